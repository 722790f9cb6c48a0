// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"
	"sort"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// miscellaneous constants
const (
	AccountIdSize  = 32
	checksumLength = 2

	// leading byte of the text form
	addressPrefix = 0x2a
)

// AccountId - 32 byte identifier of a signer, no internal structure
type AccountId [AccountIdSize]byte

// Zero - the all zeros account
var Zero AccountId

// FromBytes - convert a byte slice to an account
func FromBytes(b []byte) (AccountId, error) {
	a := AccountId{}
	if AccountIdSize != len(b) {
		return a, fault.InvalidKeyLength
	}
	copy(a[:], b)
	return a, nil
}

// FromBase58 - decode the text form of an account
func FromBase58(s string) (AccountId, error) {
	a := AccountId{}
	decoded, err := base58.Decode(s)
	if nil != err {
		return a, fault.CannotDecodeAccount
	}
	if 1+AccountIdSize+checksumLength != len(decoded) || addressPrefix != decoded[0] {
		return a, fault.CannotDecodeAccount
	}
	checksumStart := len(decoded) - checksumLength
	checksum := blake2b.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ChecksumMismatch
	}
	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// Bytes - the raw 32 bytes
func (a AccountId) Bytes() []byte {
	return a[:]
}

// IsZero - true for the all zeros account
func (a AccountId) IsZero() bool {
	return Zero == a
}

// String - base58 text form with a short checksum
func (a AccountId) String() string {
	buffer := make([]byte, 0, 1+AccountIdSize+checksumLength)
	buffer = append(buffer, addressPrefix)
	buffer = append(buffer, a[:]...)
	checksum := blake2b.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - hex form for %#v
func (a AccountId) GoString() string {
	return "<account:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert account to text for JSON
func (a AccountId) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert text to an account
func (a *AccountId) UnmarshalText(s []byte) error {
	result, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = result
	return nil
}

// Encode - binary form is the raw bytes
func (a AccountId) Encode(e *codec.Encoder) {
	e.Fixed(a[:])
}

// Decode - binary form is the raw bytes
func (a *AccountId) Decode(d *codec.Decoder) {
	d.Fixed(a[:])
}

// Less - byte order
func (a AccountId) Less(b AccountId) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// SortUnique - sort accounts and drop duplicates
func SortUnique(accounts []AccountId) []AccountId {
	result := make([]AccountId, len(accounts))
	copy(result, accounts)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Less(result[j])
	})
	n := 0
	for i, a := range result {
		if 0 == i || a != result[n-1] {
			result[n] = a
			n += 1
		}
	}
	return result[:n]
}

// IsSortedUnique - strictly ascending
func IsSortedUnique(accounts []AccountId) bool {
	for i := 1; i < len(accounts); i += 1 {
		if !accounts[i-1].Less(accounts[i]) {
			return false
		}
	}
	return true
}

// EncodeList - Varint64 count followed by the accounts
func EncodeList(e *codec.Encoder, accounts []AccountId) {
	e.Length(len(accounts))
	for _, a := range accounts {
		a.Encode(e)
	}
}

// DecodeList - inverse of EncodeList
func DecodeList(d *codec.Decoder) []AccountId {
	n := d.Length()
	if nil != d.Err() {
		return nil
	}
	accounts := make([]AccountId, n)
	for i := range accounts {
		accounts[i].Decode(d)
	}
	return accounts
}
