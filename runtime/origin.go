// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/fault"
)

// OriginKind - who is calling
type OriginKind uint8

// possible origins
const (
	OriginNone   OriginKind = iota // unsigned extrinsic
	OriginSigned OriginKind = iota // an account
	OriginRoot   OriginKind = iota // the chain itself: genesis and hooks
)

// Origin - the caller of a dispatched call
type Origin struct {
	Kind    OriginKind
	Account account.AccountId
}

// Signed - origin for an account
func Signed(a account.AccountId) Origin {
	return Origin{
		Kind:    OriginSigned,
		Account: a,
	}
}

// None - origin for an unsigned extrinsic
func None() Origin {
	return Origin{Kind: OriginNone}
}

// Root - origin for the chain itself
func Root() Origin {
	return Origin{Kind: OriginRoot}
}

// EnsureSigned - the account of a signed origin
func (o Origin) EnsureSigned() (account.AccountId, error) {
	if OriginSigned != o.Kind {
		return account.Zero, fault.BadOrigin
	}
	return o.Account, nil
}

// EnsureSignedBy - a signed origin of a specific account
func (o Origin) EnsureSignedBy(a account.AccountId) error {
	if OriginSigned != o.Kind || o.Account != a {
		return fault.BadOrigin
	}
	return nil
}

// EnsureNone - an unsigned origin
func (o Origin) EnsureNone() error {
	if OriginNone != o.Kind {
		return fault.BadOrigin
	}
	return nil
}

// EnsureRoot - the chain itself
func (o Origin) EnsureRoot() error {
	if OriginRoot != o.Kind {
		return fault.BadOrigin
	}
	return nil
}

func (o Origin) String() string {
	switch o.Kind {
	case OriginNone:
		return "none"
	case OriginSigned:
		return fmt.Sprintf("signed(%s)", o.Account)
	case OriginRoot:
		return "root"
	default:
		return "unknown"
	}
}
