// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the DAO module, registration order is the wire index
var (
	ErrDaoExists          = fault.ExistsError("dao already exists")
	ErrUnknownDao         = fault.NotFoundError("unknown dao")
	ErrInvalidAuthority   = fault.InvalidError("invalid authority")
	ErrTooManySignatories = fault.LengthError("too many signatories")
	ErrNotDaoOrigin       = fault.PermissionError("origin is not a dao key")
	ErrNotAuthority       = fault.PermissionError("origin is not the dao authority")
	ErrMemberExists       = fault.ExistsError("member already exists")
	ErrUnknownMember      = fault.NotFoundError("unknown member")
	ErrUnknownChange      = fault.InvalidError("unknown authority change")
	ErrDaoKeyInUse        = fault.ExistsError("dao key already in use")
)

func init() {
	fault.Register(constants.ModuleDao,
		ErrDaoExists,
		ErrUnknownDao,
		ErrInvalidAuthority,
		ErrTooManySignatories,
		ErrNotDaoOrigin,
		ErrNotAuthority,
		ErrMemberExists,
		ErrUnknownMember,
		ErrUnknownChange,
		ErrDaoKeyInUse,
	)
}
