// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fungible

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
)

// Created - a new asset
type Created struct {
	Asset   AssetId           `json:"asset"`
	Owner   account.AccountId `json:"owner"`
	Managed bool              `json:"managed"`
}

func (ev Created) EventName() string { return "Created" }
func (ev Created) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	ev.Owner.Encode(e)
	e.Bool(ev.Managed)
}

// Destroyed - an asset with no supply was removed
type Destroyed struct {
	Asset AssetId `json:"asset"`
}

func (ev Destroyed) EventName() string { return "Destroyed" }
func (ev Destroyed) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
}

// Limited - no more minting of an asset
type Limited struct {
	Asset AssetId `json:"asset"`
}

func (ev Limited) EventName() string { return "Limited" }
func (ev Limited) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
}

// Issued - new supply
type Issued struct {
	Asset  AssetId           `json:"asset"`
	Owner  account.AccountId `json:"owner"`
	Amount uint64            `json:"amount"`
}

func (ev Issued) EventName() string { return "Issued" }
func (ev Issued) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	ev.Owner.Encode(e)
	e.Uint64(ev.Amount)
}

// Burned - supply removed
type Burned struct {
	Asset  AssetId           `json:"asset"`
	Owner  account.AccountId `json:"owner"`
	Amount uint64            `json:"amount"`
}

func (ev Burned) EventName() string { return "Burned" }
func (ev Burned) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	ev.Owner.Encode(e)
	e.Uint64(ev.Amount)
}

// Transferred - free balance moved between accounts
type Transferred struct {
	Asset  AssetId           `json:"asset"`
	From   account.AccountId `json:"from"`
	To     account.AccountId `json:"to"`
	Amount uint64            `json:"amount"`
}

func (ev Transferred) EventName() string { return "Transferred" }
func (ev Transferred) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	ev.From.Encode(e)
	ev.To.Encode(e)
	e.Uint64(ev.Amount)
}

// BalanceReserved - free balance moved into a bucket
type BalanceReserved struct {
	Asset  AssetId           `json:"asset"`
	Bucket Bucket            `json:"bucket"`
	Who    account.AccountId `json:"who"`
	Amount uint64            `json:"amount"`
}

func (ev BalanceReserved) EventName() string { return "Reserved" }
func (ev BalanceReserved) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	e.Fixed(ev.Bucket[:])
	ev.Who.Encode(e)
	e.Uint64(ev.Amount)
}

// Unreserved - bucket balance returned to free
type Unreserved struct {
	Asset  AssetId           `json:"asset"`
	Bucket Bucket            `json:"bucket"`
	Who    account.AccountId `json:"who"`
	Amount uint64            `json:"amount"`
}

func (ev Unreserved) EventName() string { return "Unreserved" }
func (ev Unreserved) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	e.Fixed(ev.Bucket[:])
	ev.Who.Encode(e)
	e.Uint64(ev.Amount)
}

// ReserveRepatriated - bucket balance of one account paid to another
type ReserveRepatriated struct {
	Asset  AssetId           `json:"asset"`
	Bucket Bucket            `json:"bucket"`
	From   account.AccountId `json:"from"`
	To     account.AccountId `json:"to"`
	Amount uint64            `json:"amount"`
}

func (ev ReserveRepatriated) EventName() string { return "ReserveRepatriated" }
func (ev ReserveRepatriated) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Asset))
	e.Fixed(ev.Bucket[:])
	ev.From.Encode(e)
	ev.To.Encode(e)
	e.Uint64(ev.Amount)
}
