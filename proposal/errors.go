// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the proposal engine, registration order is the wire index
var (
	ErrExists           = fault.ExistsError("proposal already exists")
	ErrNotFound         = fault.NotFoundError("proposal not found")
	ErrReachDepthLimit  = fault.LengthError("proposal reached depth limit")
	ErrReachSizeLimit   = fault.LengthError("proposal reached size limit")
	ErrSelfReference    = fault.InvalidError("proposal references itself")
	ErrNotMember        = fault.PermissionError("not a member of the proposal")
	ErrEmptyBatch       = fault.InvalidError("proposal batch is empty")
	ErrNotExpired       = fault.InvalidError("proposal has not expired")
	ErrWeightHintTooLow = fault.InvalidError("batch weight hint too low")
	ErrUnknownDecision  = fault.InvalidError("unknown decision")
)

func init() {
	fault.Register(constants.ModuleProposal,
		ErrExists,
		ErrNotFound,
		ErrReachDepthLimit,
		ErrReachSizeLimit,
		ErrSelfReference,
		ErrNotMember,
		ErrEmptyBatch,
		ErrNotExpired,
		ErrWeightHintTooLow,
		ErrUnknownDecision,
	)
}
