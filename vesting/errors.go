// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of vesting, registration order is the wire index
var (
	ErrExistingVestingPlan = fault.ExistsError("existing vesting plan")
	ErrAmountLow           = fault.InvalidError("vesting amount too low")
	ErrInvalidVestingPlan  = fault.InvalidError("invalid vesting plan")
	ErrNoVestingPlan       = fault.NotFoundError("no vesting plan")
)

func init() {
	fault.Register(constants.ModuleVesting,
		ErrExistingVestingPlan,
		ErrAmountLow,
		ErrInvalidVestingPlan,
		ErrNoVestingPlan,
	)
}
