// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
)

// errors of the domain module, registration order is the wire index
var (
	ErrDomainExists    = fault.ExistsError("domain already exists")
	ErrUnknownDomain   = fault.NotFoundError("unknown domain")
	ErrInvalidName     = fault.InvalidError("invalid domain name")
	ErrNotDomainOwner  = fault.PermissionError("not the domain owner")
	ErrTransferToSelf  = fault.InvalidError("domain transfer to current owner")
)

func init() {
	fault.Register(constants.ModuleDomain,
		ErrDomainExists,
		ErrUnknownDomain,
		ErrInvalidName,
		ErrNotDomainOwner,
		ErrTransferToSelf,
	)
}
