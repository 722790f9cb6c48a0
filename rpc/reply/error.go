// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reply - error text returned to RPC clients
package reply

import (
	"errors"

	"github.com/bitmark-inc/ipchaind/fault"
)

// Error - replace an error by its "module:index(tag)" discriminant so
// clients can match on the stable numbers
func Error(err error) error {
	if nil == err {
		return nil
	}
	return errors.New(fault.DiscriminantOf(err).String())
}
