// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunding

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// crowdfunding functions
const (
	FnCreate = 0
	FnInvest = 1
)

const moduleName = "crowdfunding"

// CreateArgs - the terms of a new sale
type CreateArgs struct {
	Id      SaleId
	Asset   fungible.AssetId
	Start   uint64
	End     uint64
	SoftCap codec.Wide
	HardCap codec.Wide
	Shares  []fungible.Amount
}

func (a CreateArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
	e.Uint32(uint32(a.Asset))
	e.Uint64(a.Start)
	e.Uint64(a.End)
	a.SoftCap.Encode(e)
	a.HardCap.Encode(e)
	fungible.EncodeAmounts(e, a.Shares)
}

func (a *CreateArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
	a.Asset = fungible.AssetId(d.Uint32())
	a.Start = d.Uint64()
	a.End = d.Uint64()
	a.SoftCap.Decode(d)
	a.HardCap.Decode(d)
	a.Shares = fungible.DecodeAmounts(d)
}

// InvestArgs - a contribution to a sale
type InvestArgs struct {
	Id           SaleId
	Contribution fungible.Amount
}

func (a InvestArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
	a.Contribution.Encode(e)
}

func (a *InvestArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
	a.Contribution.Decode(d)
}

// Hooks - drives scheduled activation and termination from the block
// time
type Hooks struct{}

func (Hooks) OnInitialize(ctx *runtime.Context) error {
	return Process(ctx)
}

func (Hooks) OnFinalize(ctx *runtime.Context) error {
	return nil
}

// Register - add the crowdfunding calls and hooks to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleCrowdfunding, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  50000,
		Handler: create,
	})
	d.Register(constants.ModuleCrowdfunding, moduleName, FnInvest, runtime.Function{
		Name:    "invest",
		Weight:  50000,
		Handler: invest,
	})
	d.AddHooks(Hooks{})
}

func create(ctx *runtime.Context, args []byte) error {
	a := CreateArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Create(ctx, owner, Sale{
		Id:      a.Id,
		Asset:   a.Asset,
		Start:   a.Start,
		End:     a.End,
		SoftCap: a.SoftCap,
		HardCap: a.HardCap,
		Shares:  a.Shares,
	})
	return err
}

func invest(ctx *runtime.Context, args []byte) error {
	a := InvestArgs{}
	who, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Invest(ctx, who, a.Id, a.Contribution)
	return err
}
