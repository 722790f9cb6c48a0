// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the portal engine, registration order is the wire index
var (
	ErrPortalAlreadyExist = fault.ExistsError("portal already exists")
	ErrUnknownPortal      = fault.NotFoundError("portal not found")
	ErrNotTenant          = fault.PermissionError("origin is not a tenant")
	ErrDelegateMismatch   = fault.PermissionError("delegate mismatch")
	ErrPortalMismatch     = fault.PermissionError("portal mismatch")
	ErrAlreadySigned      = fault.ExistsError("extrinsic already signed")
	ErrNotSigned          = fault.NotFoundError("extrinsic not signed by delegate")
	ErrNotExecCall        = fault.InvalidError("wrapped call is not portal exec")
	ErrNotPortalOwner     = fault.PermissionError("not the portal owner")
	ErrUnknownPostponed   = fault.NotFoundError("postponed call not found")
	ErrNotDue             = fault.InvalidError("postponed call not due")
	ErrCallMismatch       = fault.InvalidError("postponed call mismatch")
	ErrDueInPast          = fault.InvalidError("due block in the past")
)

func init() {
	fault.Register(constants.ModulePortal,
		ErrPortalAlreadyExist,
		ErrUnknownPortal,
		ErrNotTenant,
		ErrDelegateMismatch,
		ErrPortalMismatch,
		ErrAlreadySigned,
		ErrNotSigned,
		ErrNotExecCall,
		ErrNotPortalOwner,
		ErrUnknownPostponed,
		ErrNotDue,
		ErrCallMismatch,
		ErrDueInPast,
	)
}
