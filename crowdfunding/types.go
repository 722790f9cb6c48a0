// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunding

import (
	"encoding/hex"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fungible"
)

// SaleIdSize - bytes in an investment id
const SaleIdSize = 20

// SaleId - caller chosen investment id, also names the custody bucket
type SaleId [SaleIdSize]byte

// String - hex for fmt %s
func (id SaleId) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - hex encoded
func (id SaleId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - from hex
func (id *SaleId) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != SaleIdSize {
		return fault.InvalidKeyLength
	}
	_, err := hex.Decode(id[:], s)
	return err
}

// Bucket - where contributions and shares are held
func (id SaleId) Bucket() fungible.Bucket {
	return fungible.Bucket(id)
}

// Status - position in the lifecycle, only moves forward
type Status uint8

// sale states
const (
	Inactive Status = 0
	Active   Status = 1
	Finished Status = 2
	Expired  Status = 3
)

// String - for logging and JSON
func (s Status) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	case Finished:
		return "Finished"
	case Expired:
		return "Expired"
	}
	return "Unknown"
}

// MarshalText - the name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusFromString - parse a status name
func StatusFromString(s string) (Status, error) {
	for st := Inactive; st <= Expired; st += 1 {
		if st.String() == s {
			return st, nil
		}
	}
	return Inactive, ErrUnknownStatus
}

// Sale - a timed sale of shares against an asset
type Sale struct {
	Id           SaleId            `json:"id"`
	Owner        account.AccountId `json:"owner"`
	Asset        fungible.AssetId  `json:"asset"`
	Start        uint64            `json:"start"`
	End          uint64            `json:"end"`
	SoftCap      codec.Wide        `json:"softCap"`
	HardCap      codec.Wide        `json:"hardCap"`
	Total        uint64            `json:"total"`
	Status       Status            `json:"status"`
	Shares       []fungible.Amount `json:"shares"`
	CreatedBlock uint64            `json:"createdBlock"`
	CreatedIndex uint32            `json:"createdIndex"`
}

func (s Sale) Encode(e *codec.Encoder) {
	e.Fixed(s.Id[:])
	s.Owner.Encode(e)
	e.Uint32(uint32(s.Asset))
	e.Uint64(s.Start)
	e.Uint64(s.End)
	s.SoftCap.Encode(e)
	s.HardCap.Encode(e)
	e.Uint64(s.Total)
	e.Uint8(uint8(s.Status))
	fungible.EncodeAmounts(e, s.Shares)
	e.Uint64(s.CreatedBlock)
	e.Uint32(s.CreatedIndex)
}

func (s *Sale) Decode(d *codec.Decoder) {
	d.Fixed(s.Id[:])
	s.Owner.Decode(d)
	s.Asset = fungible.AssetId(d.Uint32())
	s.Start = d.Uint64()
	s.End = d.Uint64()
	s.SoftCap.Decode(d)
	s.HardCap.Decode(d)
	s.Total = d.Uint64()
	status := d.Uint8()
	if status > uint8(Expired) {
		d.Fail(fault.UnknownEnumValue)
		return
	}
	s.Status = Status(status)
	s.Shares = fungible.DecodeAmounts(d)
	s.CreatedBlock = d.Uint64()
	s.CreatedIndex = d.Uint32()
}

// remaining - capacity left under the hard cap, false if unbounded in
// 64 bits
func (s Sale) remaining() (uint64, bool) {
	if !s.HardCap.IsUint64() {
		return 0, false
	}
	if s.Total >= s.HardCap.Lo {
		return 0, true
	}
	return s.HardCap.Lo - s.Total, true
}

// reachedSoftCap - total at or above the soft cap
func (s Sale) reachedSoftCap() bool {
	return codec.WideFromUint64(s.Total).Cmp(s.SoftCap) >= 0
}

// Contribution - the merged investment of one account
type Contribution struct {
	Sale   SaleId            `json:"sale"`
	Owner  account.AccountId `json:"owner"`
	Amount uint64            `json:"amount"`
	Time   uint64            `json:"time"`
}

func (c Contribution) Encode(e *codec.Encoder) {
	e.Fixed(c.Sale[:])
	c.Owner.Encode(e)
	e.Uint64(c.Amount)
	e.Uint64(c.Time)
}

func (c *Contribution) Decode(d *codec.Decoder) {
	d.Fixed(c.Sale[:])
	c.Owner.Decode(d)
	c.Amount = d.Uint64()
	c.Time = d.Uint64()
}
