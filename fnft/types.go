// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"encoding/hex"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/uniques"
)

// CollectionId - public id of a collection
type CollectionId uint32

// FingerprintSize - bytes in a fingerprint
const FingerprintSize = 32

// Fingerprint - blake2b-256 of the uniqueness claim of an item
type Fingerprint [FingerprintSize]byte

// String - hex for fmt %s
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// MarshalText - hex encoded
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText - from hex
func (f *Fingerprint) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != FingerprintSize {
		return fault.InvalidKeyLength
	}
	_, err := hex.Decode(f[:], s)
	return err
}

// Unique - the claim that makes an item unique, e.g. a content hash
// and a registration number
type Unique struct {
	Claim []byte
}

func (u Unique) Encode(e *codec.Encoder) {
	e.ByteSlice(u.Claim)
}

func (u *Unique) Decode(d *codec.Decoder) {
	u.Claim = d.ByteSlice()
}

// Fingerprint - the identity derived from the claim
func (u Unique) Fingerprint() Fingerprint {
	return Fingerprint(runtime.HashOf(u.Claim))
}

// Collection - a bounded set of items backed by a uniques class
type Collection struct {
	Id           CollectionId       `json:"id"`
	Owner        account.AccountId  `json:"owner"`
	Class        uniques.ClassId    `json:"class"`
	MaxItems     uint32             `json:"maxItems"`
	Count        uint32             `json:"count"`
	NextInstance uniques.InstanceId `json:"nextInstance"`
}

func (c Collection) Encode(e *codec.Encoder) {
	e.Uint32(uint32(c.Id))
	c.Owner.Encode(e)
	e.Uint32(uint32(c.Class))
	e.Uint32(c.MaxItems)
	e.Uint32(c.Count)
	e.Uint32(uint32(c.NextInstance))
}

func (c *Collection) Decode(d *codec.Decoder) {
	c.Id = CollectionId(d.Uint32())
	c.Owner.Decode(d)
	c.Class = uniques.ClassId(d.Uint32())
	c.MaxItems = d.Uint32()
	c.Count = d.Uint32()
	c.NextInstance = uniques.InstanceId(d.Uint32())
}

// Fractional - side token and total supply of a fractionalized item
type Fractional struct {
	Asset fungible.AssetId `json:"asset"`
	Total uint64           `json:"total"`
}

// Item - a tokenized IP asset
type Item struct {
	Fingerprint Fingerprint        `json:"fingerprint"`
	Owner       account.AccountId  `json:"owner"`
	Collection  CollectionId       `json:"collection"`
	Instance    uniques.InstanceId `json:"instance"`
	Fractional  *Fractional        `json:"fractional,omitempty"`
}

// IsFractional - true if fractions exist
func (item Item) IsFractional() bool {
	return nil != item.Fractional
}

func (item Item) Encode(e *codec.Encoder) {
	e.Fixed(item.Fingerprint[:])
	item.Owner.Encode(e)
	e.Uint32(uint32(item.Collection))
	e.Uint32(uint32(item.Instance))
	if e.Option(nil != item.Fractional) {
		e.Uint32(uint32(item.Fractional.Asset))
		e.Uint64(item.Fractional.Total)
	}
}

func (item *Item) Decode(d *codec.Decoder) {
	d.Fixed(item.Fingerprint[:])
	item.Owner.Decode(d)
	item.Collection = CollectionId(d.Uint32())
	item.Instance = uniques.InstanceId(d.Uint32())
	item.Fractional = nil
	if d.Option() {
		item.Fractional = &Fractional{
			Asset: fungible.AssetId(d.Uint32()),
			Total: d.Uint64(),
		}
	}
}

// HolderSize - bytes in a holder id
const HolderSize = 8

// HolderId - the party that placed a hold, e.g. a marketplace listing
type HolderId [HolderSize]byte

// MarshalText - hex encoded
func (h HolderId) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h[:])), nil
}

// Hold - a freeze on a fraction, keyed by holder and guard
type Hold struct {
	Holder HolderId `json:"holder"`
	Guard  uint32   `json:"guard"`
}

// Fraction - the share of one owner in a fractionalized item
//
// any hold freezes the whole fraction against outgoing transfer
type Fraction struct {
	Owner       account.AccountId `json:"owner"`
	Fingerprint Fingerprint       `json:"fingerprint"`
	Asset       fungible.AssetId  `json:"asset"`
	Amount      uint64            `json:"amount"`
	Holds       []Hold            `json:"holds"`
}

func (f Fraction) Encode(e *codec.Encoder) {
	f.Owner.Encode(e)
	e.Fixed(f.Fingerprint[:])
	e.Uint32(uint32(f.Asset))
	e.Uint64(f.Amount)
	e.Length(len(f.Holds))
	for _, h := range f.Holds {
		e.Fixed(h.Holder[:])
		e.Uint32(h.Guard)
	}
}

func (f *Fraction) Decode(d *codec.Decoder) {
	f.Owner.Decode(d)
	d.Fixed(f.Fingerprint[:])
	f.Asset = fungible.AssetId(d.Uint32())
	f.Amount = d.Uint64()
	n := d.Length()
	if nil != d.Err() {
		return
	}
	f.Holds = make([]Hold, n)
	for i := range f.Holds {
		d.Fixed(f.Holds[i].Holder[:])
		f.Holds[i].Guard = d.Uint32()
	}
}

// IsHeld - true if any hold is present
func (f Fraction) IsHeld() bool {
	return 0 != len(f.Holds)
}

func (f Fraction) holdIndex(h Hold) int {
	for i, existing := range f.Holds {
		if existing == h {
			return i
		}
	}
	return -1
}
