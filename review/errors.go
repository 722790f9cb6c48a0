// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the review module, registration order is the wire index
var (
	ErrUnknownProject = fault.NotFoundError("unknown project")
	ErrUnknownReview  = fault.NotFoundError("unknown review")
	ErrInvalidRating  = fault.InvalidError("rating out of range")
	ErrAlreadyUpvoted = fault.ExistsError("review already upvoted")
	ErrOwnReview      = fault.PermissionError("cannot upvote own review")
)

func init() {
	fault.Register(constants.ModuleReview,
		ErrUnknownProject,
		ErrUnknownReview,
		ErrInvalidRating,
		ErrAlreadyUpvoted,
		ErrOwnReview,
	)
}
