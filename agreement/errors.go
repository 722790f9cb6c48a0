// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package agreement

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the agreement module, registration order is the wire index
var (
	ErrUnknownAgreement = fault.NotFoundError("unknown agreement")
	ErrNotParty         = fault.PermissionError("not a party to the agreement")
	ErrPartySigned      = fault.ExistsError("party already signed the agreement")
	ErrNotOpen          = fault.InvalidError("agreement is not open")
	ErrTooFewParties    = fault.LengthError("agreement needs at least two parties")
	ErrTooManyParties   = fault.LengthError("agreement has too many parties")
	ErrDuplicateParty   = fault.InvalidError("duplicate agreement party")
)

func init() {
	fault.Register(constants.ModuleAgreement,
		ErrUnknownAgreement,
		ErrNotParty,
		ErrPartySigned,
		ErrNotOpen,
		ErrTooFewParties,
		ErrTooManyParties,
		ErrDuplicateParty,
	)
}
