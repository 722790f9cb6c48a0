// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunding

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the crowdfunding engine, registration order is the wire
// index
var (
	ErrSaleExists       = fault.ExistsError("sale already exists")
	ErrUnknownSale      = fault.NotFoundError("sale not found")
	ErrInvalidPeriod    = fault.InvalidError("sale must start before it ends")
	ErrInvalidCaps      = fault.InvalidError("soft cap is above hard cap")
	ErrNoShares         = fault.InvalidError("sale has no shares")
	ErrZeroShare        = fault.InvalidError("share amount is zero")
	ErrManagedAsset     = fault.PermissionError("managed asset cannot be sold")
	ErrNotActive        = fault.InvalidError("sale is not active")
	ErrWrongAsset       = fault.InvalidError("wrong contribution asset")
	ErrZeroContribution = fault.InvalidError("contribution is zero")
	ErrUnknownStatus    = fault.InvalidError("unknown sale status")
)

func init() {
	fault.Register(constants.ModuleCrowdfunding,
		ErrSaleExists,
		ErrUnknownSale,
		ErrInvalidPeriod,
		ErrInvalidCaps,
		ErrNoShares,
		ErrZeroShare,
		ErrManagedAsset,
		ErrNotActive,
		ErrWrongAsset,
		ErrZeroContribution,
		ErrUnknownStatus,
	)
}
