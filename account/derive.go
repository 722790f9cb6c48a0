// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/ipchaind/codec"
)

// domain separation tags for derived accounts
const (
	multiTag   = "modlpy/utilisuba"
	derivedTag = "modlpy/derived__"
)

// MultiAccountId - deterministic key of a signatory set and threshold
//
// signatories must already be sorted and unique
func MultiAccountId(signatories []AccountId, threshold uint16) AccountId {
	e := codec.NewEncoder()
	e.Fixed([]byte(multiTag))
	EncodeList(e, signatories)
	e.Uint16(threshold)
	return AccountId(blake2b.Sum256(e.Bytes()))
}

// DerivedAccount - deterministic key of a named entity, e.g. a DAO or a sale
func DerivedAccount(tag string, id []byte) AccountId {
	e := codec.NewEncoder()
	e.Fixed([]byte(derivedTag))
	e.String(tag)
	e.ByteSlice(id)
	return AccountId(blake2b.Sum256(e.Bytes()))
}
