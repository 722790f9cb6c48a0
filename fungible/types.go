// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fungible

import (
	"encoding/hex"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
)

// AssetId - index of an asset, 0 is the native currency
type AssetId uint32

// Native - the currency fees and vesting are paid in
const Native AssetId = 0

// BucketSize - bytes in a reserve bucket identifier
const BucketSize = 20

// Bucket - a named custodial reserve, e.g. a crowdfunding sale
type Bucket [BucketSize]byte

// LockSize - bytes in a lock identifier
const LockSize = 8

// LockId - a named lock over free balance
type LockId [LockSize]byte

// String - for fmt %s
func (b Bucket) String() string {
	return hex.EncodeToString(b[:])
}

// MarshalText - hex encoded
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String - for fmt %s
func (l LockId) String() string {
	return hex.EncodeToString(l[:])
}

// Asset - a fungible asset
//
// a managed asset can only be moved by the module that created it,
// a limited asset cannot be minted any further
type Asset struct {
	Id      AssetId           `json:"id"`
	Owner   account.AccountId `json:"owner"`
	Limited bool              `json:"limited"`
	Managed bool              `json:"managed"`
	Supply  uint64            `json:"supply"`
}

func (a Asset) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Id))
	a.Owner.Encode(e)
	e.Bool(a.Limited)
	e.Bool(a.Managed)
	e.Uint64(a.Supply)
}

func (a *Asset) Decode(d *codec.Decoder) {
	a.Id = AssetId(d.Uint32())
	a.Owner.Decode(d)
	a.Limited = d.Bool()
	a.Managed = d.Bool()
	a.Supply = d.Uint64()
}

// Amount - an asset and a quantity of it
type Amount struct {
	Id     AssetId `json:"id"`
	Amount uint64  `json:"amount"`
}

func (a Amount) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Id))
	e.Uint64(a.Amount)
}

func (a *Amount) Decode(d *codec.Decoder) {
	a.Id = AssetId(d.Uint32())
	a.Amount = d.Uint64()
}

// EncodeAmounts - Varint64 count followed by the amounts
func EncodeAmounts(e *codec.Encoder, amounts []Amount) {
	e.Length(len(amounts))
	for _, a := range amounts {
		a.Encode(e)
	}
}

// DecodeAmounts - inverse of EncodeAmounts
func DecodeAmounts(d *codec.Decoder) []Amount {
	n := d.Length()
	if nil != d.Err() {
		return nil
	}
	amounts := make([]Amount, n)
	for i := range amounts {
		amounts[i].Decode(d)
	}
	return amounts
}
