// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fungible

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the fungible module, registration order is the wire index
var (
	ErrUnknownAsset        = fault.ResourceError("unknown asset")
	ErrInsufficientBalance = fault.InvalidError("insufficient balance")
	ErrBalanceOverflow     = fault.ResourceError("balance overflow")
	ErrMintingLimited      = fault.PermissionError("minting is limited")
	ErrNotAssetOwner       = fault.PermissionError("not the asset owner")
	ErrAssetIsManaged      = fault.PermissionError("asset is managed")
	ErrLiquidityRestricted = fault.InvalidError("balance is locked")
	ErrInsufficientReserve = fault.InvalidError("insufficient reserved balance")
	ErrAssetInUse          = fault.InvalidError("asset still has supply")
	ErrAssetExists         = fault.ExistsError("asset already exists")
)

func init() {
	fault.Register(constants.ModuleFungible,
		ErrUnknownAsset,
		ErrInsufficientBalance,
		ErrBalanceOverflow,
		ErrMintingLimited,
		ErrNotAssetOwner,
		ErrAssetIsManaged,
		ErrLiquidityRestricted,
		ErrInsufficientReserve,
		ErrAssetInUse,
		ErrAssetExists,
	)
}
