// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunding

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fungible"
)

// SimpleCrowdfundingCreated - a new inactive sale
type SimpleCrowdfundingCreated struct {
	Id      SaleId            `json:"id"`
	Owner   account.AccountId `json:"owner"`
	Asset   fungible.AssetId  `json:"asset"`
	Start   uint64            `json:"start"`
	End     uint64            `json:"end"`
	SoftCap codec.Wide        `json:"softCap"`
	HardCap codec.Wide        `json:"hardCap"`
	Shares  []fungible.Amount `json:"shares"`
}

func (ev SimpleCrowdfundingCreated) EventName() string { return "SimpleCrowdfundingCreated" }
func (ev SimpleCrowdfundingCreated) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Owner.Encode(e)
	e.Uint32(uint32(ev.Asset))
	e.Uint64(ev.Start)
	e.Uint64(ev.End)
	ev.SoftCap.Encode(e)
	ev.HardCap.Encode(e)
	fungible.EncodeAmounts(e, ev.Shares)
}

// SimpleCrowdfundingActivated - the start time was reached
type SimpleCrowdfundingActivated struct {
	Id SaleId `json:"id"`
}

func (ev SimpleCrowdfundingActivated) EventName() string { return "SimpleCrowdfundingActivated" }
func (ev SimpleCrowdfundingActivated) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
}

// Invested - an accepted contribution after clamping
type Invested struct {
	Id     SaleId            `json:"id"`
	Who    account.AccountId `json:"who"`
	Amount uint64            `json:"amount"`
	Total  uint64            `json:"total"`
}

func (ev Invested) EventName() string { return "Invested" }
func (ev Invested) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Who.Encode(e)
	e.Uint64(ev.Amount)
	e.Uint64(ev.Total)
}

// SimpleCrowdfundingFinished - shares were distributed
type SimpleCrowdfundingFinished struct {
	Id    SaleId `json:"id"`
	Total uint64 `json:"total"`
}

func (ev SimpleCrowdfundingFinished) EventName() string { return "SimpleCrowdfundingFinished" }
func (ev SimpleCrowdfundingFinished) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	e.Uint64(ev.Total)
}

// SimpleCrowdfundingExpired - contributions were refunded
type SimpleCrowdfundingExpired struct {
	Id    SaleId `json:"id"`
	Total uint64 `json:"total"`
}

func (ev SimpleCrowdfundingExpired) EventName() string { return "SimpleCrowdfundingExpired" }
func (ev SimpleCrowdfundingExpired) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	e.Uint64(ev.Total)
}
