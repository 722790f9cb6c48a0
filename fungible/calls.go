// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fungible

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// public functions of the module
const (
	FnTransfer   = 0
	FnCreate     = 1
	FnMint       = 2
	FnBurn       = 3
	FnSetLimited = 4
)

const moduleName = "fungible"

// TransferArgs - arguments of fungible.transfer
type TransferArgs struct {
	Asset  AssetId
	To     account.AccountId
	Amount uint64
}

func (a TransferArgs) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Asset))
	a.To.Encode(e)
	e.Uint64(a.Amount)
}

func (a *TransferArgs) Decode(d *codec.Decoder) {
	a.Asset = AssetId(d.Uint32())
	a.To.Decode(d)
	a.Amount = d.Uint64()
}

// CreateArgs - arguments of fungible.create
type CreateArgs struct {
	Limited bool
}

func (a CreateArgs) Encode(e *codec.Encoder) {
	e.Bool(a.Limited)
}

func (a *CreateArgs) Decode(d *codec.Decoder) {
	a.Limited = d.Bool()
}

// MintArgs - arguments of fungible.mint
type MintArgs = TransferArgs

// AssetArgs - arguments of fungible.burn and fungible.set_limited
type AssetArgs struct {
	Asset  AssetId
	Amount uint64
}

func (a AssetArgs) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Asset))
	e.Uint64(a.Amount)
}

func (a *AssetArgs) Decode(d *codec.Decoder) {
	a.Asset = AssetId(d.Uint32())
	a.Amount = d.Uint64()
}

// Register - add the public calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleFungible, moduleName, FnTransfer, runtime.Function{
		Name:    "transfer",
		Weight:  10000,
		Handler: transfer,
	})
	d.Register(constants.ModuleFungible, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  20000,
		Handler: create,
	})
	d.Register(constants.ModuleFungible, moduleName, FnMint, runtime.Function{
		Name:    "mint",
		Weight:  10000,
		Handler: mint,
	})
	d.Register(constants.ModuleFungible, moduleName, FnBurn, runtime.Function{
		Name:    "burn",
		Weight:  10000,
		Handler: burn,
	})
	d.Register(constants.ModuleFungible, moduleName, FnSetLimited, runtime.Function{
		Name:    "set_limited",
		Weight:  5000,
		Handler: setLimited,
	})
}

// assets created by other modules cannot be moved by the public calls
func unmanaged(ctx *runtime.Context, id AssetId) (Asset, error) {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return a, err
	}
	if a.Managed {
		return a, ErrAssetIsManaged
	}
	return a, nil
}

func ownedBy(ctx *runtime.Context, id AssetId, who account.AccountId) error {
	a, err := unmanaged(ctx, id)
	if nil != err {
		return err
	}
	if a.Owner != who || Native == id {
		return ErrNotAssetOwner
	}
	return nil
}

func transfer(ctx *runtime.Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	a := TransferArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	_, err = unmanaged(ctx, a.Asset)
	if nil != err {
		return err
	}
	return Transfer(ctx, a.Asset, sender, a.To, a.Amount)
}

func create(ctx *runtime.Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	a := CreateArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	id, err := Create(ctx, sender, false)
	if nil != err {
		return err
	}
	if a.Limited {
		return SetLimited(ctx, id)
	}
	return nil
}

func mint(ctx *runtime.Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	a := MintArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	err = ownedBy(ctx, a.Asset, sender)
	if nil != err {
		return err
	}
	return Mint(ctx, a.Asset, a.To, a.Amount)
}

func burn(ctx *runtime.Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	a := AssetArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	_, err = unmanaged(ctx, a.Asset)
	if nil != err {
		return err
	}
	return Burn(ctx, a.Asset, sender, a.Amount)
}

func setLimited(ctx *runtime.Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	a := AssetArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	err = ownedBy(ctx, a.Asset, sender)
	if nil != err {
		return err
	}
	return SetLimited(ctx, a.Asset)
}
