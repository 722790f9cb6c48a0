// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fungible"
)

// CollectionCreated - a new collection
type CollectionCreated struct {
	Collection CollectionId      `json:"collection"`
	Owner      account.AccountId `json:"owner"`
	MaxItems   uint32            `json:"maxItems"`
}

func (ev CollectionCreated) EventName() string { return "CollectionCreated" }
func (ev CollectionCreated) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Collection))
	ev.Owner.Encode(e)
	e.Uint32(ev.MaxItems)
}

// CollectionTransferred - a collection changed owner
type CollectionTransferred struct {
	Collection CollectionId      `json:"collection"`
	From       account.AccountId `json:"from"`
	To         account.AccountId `json:"to"`
}

func (ev CollectionTransferred) EventName() string { return "CollectionTransferred" }
func (ev CollectionTransferred) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Collection))
	ev.From.Encode(e)
	ev.To.Encode(e)
}

// ItemMinted - a new item
type ItemMinted struct {
	Collection  CollectionId      `json:"collection"`
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
}

func (ev ItemMinted) EventName() string { return "ItemMinted" }
func (ev ItemMinted) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Collection))
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
}

// ItemTransferred - a whole item changed owner
type ItemTransferred struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	From        account.AccountId `json:"from"`
	To          account.AccountId `json:"to"`
}

func (ev ItemTransferred) EventName() string { return "ItemTransferred" }
func (ev ItemTransferred) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.From.Encode(e)
	ev.To.Encode(e)
}

// ItemBurned - a whole item was destroyed
type ItemBurned struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
}

func (ev ItemBurned) EventName() string { return "ItemBurned" }
func (ev ItemBurned) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
}

// Fractionalized - an item was split into fractions
type Fractionalized struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
	Asset       fungible.AssetId  `json:"asset"`
	Total       uint64            `json:"total"`
	Limited     bool              `json:"limited"`
}

func (ev Fractionalized) EventName() string { return "Fractionalized" }
func (ev Fractionalized) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
	e.Uint32(uint32(ev.Asset))
	e.Uint64(ev.Total)
	e.Bool(ev.Limited)
}

// FractionMinted - the supply of an item grew
type FractionMinted struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	To          account.AccountId `json:"to"`
	Amount      uint64            `json:"amount"`
	Total       uint64            `json:"total"`
}

func (ev FractionMinted) EventName() string { return "FractionMinted" }
func (ev FractionMinted) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.To.Encode(e)
	e.Uint64(ev.Amount)
	e.Uint64(ev.Total)
}

// FractionBurned - the supply of an item shrank
type FractionBurned struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
	Amount      uint64            `json:"amount"`
	Total       uint64            `json:"total"`
}

func (ev FractionBurned) EventName() string { return "FractionBurned" }
func (ev FractionBurned) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
	e.Uint64(ev.Amount)
	e.Uint64(ev.Total)
}

// FractionTransferred - fractions changed owner
type FractionTransferred struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	From        account.AccountId `json:"from"`
	To          account.AccountId `json:"to"`
	Amount      uint64            `json:"amount"`
}

func (ev FractionTransferred) EventName() string { return "FractionTransferred" }
func (ev FractionTransferred) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.From.Encode(e)
	ev.To.Encode(e)
	e.Uint64(ev.Amount)
}

// FractionHeld - a hold was placed
type FractionHeld struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
	Holder      HolderId          `json:"holder"`
	Guard       uint32            `json:"guard"`
}

func (ev FractionHeld) EventName() string { return "FractionHeld" }
func (ev FractionHeld) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
	e.Fixed(ev.Holder[:])
	e.Uint32(ev.Guard)
}

// FractionUnheld - a hold was released
type FractionUnheld struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
	Holder      HolderId          `json:"holder"`
	Guard       uint32            `json:"guard"`
}

func (ev FractionUnheld) EventName() string { return "FractionUnheld" }
func (ev FractionUnheld) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
	e.Fixed(ev.Holder[:])
	e.Uint32(ev.Guard)
}

// Fused - an item left the fractional state
type Fused struct {
	Fingerprint Fingerprint       `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
	Asset       fungible.AssetId  `json:"asset"`
}

func (ev Fused) EventName() string { return "Fused" }
func (ev Fused) Encode(e *codec.Encoder) {
	e.Fixed(ev.Fingerprint[:])
	ev.Owner.Encode(e)
	e.Uint32(uint32(ev.Asset))
}
