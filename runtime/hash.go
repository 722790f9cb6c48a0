// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// Hash - a blake2b-256 digest
type Hash [32]byte

// HashOf - digest of some bytes
func HashOf(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}

// String - hex form
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText - hex form for JSON
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText - hex form for JSON
func (h *Hash) UnmarshalText(s []byte) error {
	if hex.EncodedLen(len(h)) != len(s) {
		return fault.InvalidKeyLength
	}
	_, err := hex.Decode(h[:], s)
	return err
}

func (h Hash) Encode(e *codec.Encoder) {
	e.Fixed(h[:])
}

func (h *Hash) Decode(d *codec.Decoder) {
	d.Fixed(h[:])
}
