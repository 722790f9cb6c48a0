// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the F-NFT engine, registration order is the wire index
var (
	ErrUnknownCollection     = fault.ResourceError("unknown collection")
	ErrUnknownItem           = fault.ResourceError("unknown item")
	ErrNotFractionalized     = fault.InvalidError("item is not fractionalized")
	ErrWrongOwner            = fault.InvalidError("wrong owner")
	ErrInsufficientBalance   = fault.InvalidError("insufficient fraction balance")
	ErrBadValue              = fault.InvalidError("bad value")
	ErrBadTarget             = fault.InvalidError("bad target")
	ErrOverflow              = fault.ResourceError("fraction overflow")
	ErrNoPermission          = fault.PermissionError("no permission")
	ErrItemExists            = fault.ExistsError("fingerprint already exists")
	ErrCollectionFull        = fault.LengthError("collection is full")
	ErrAlreadyFractionalized = fault.InvalidError("item is already fractionalized")
)

func init() {
	fault.Register(constants.ModuleFnft,
		ErrUnknownCollection,
		ErrUnknownItem,
		ErrNotFractionalized,
		ErrWrongOwner,
		ErrInsufficientBalance,
		ErrBadValue,
		ErrBadTarget,
		ErrOverflow,
		ErrNoPermission,
		ErrItemExists,
		ErrCollectionFull,
		ErrAlreadyFractionalized,
	)
}
