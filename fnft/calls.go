// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// public functions of the engine
const (
	FnCreateCollection     = 0
	FnTransferCollection   = 1
	FnMintItem             = 2
	FnTransferItem         = 3
	FnFractionalize        = 4
	FnMintFraction         = 5
	FnTransferFraction     = 6
	FnTransferFractionFull = 7
	FnHoldFraction         = 8
	FnUnholdFraction       = 9
	FnFuse                 = 10
	FnBurnItem             = 11
	FnBurnFraction         = 12
)

const moduleName = "fnft"

// CreateCollectionArgs - arguments of fnft.create_collection
type CreateCollectionArgs struct {
	MaxItems uint32
}

func (a CreateCollectionArgs) Encode(e *codec.Encoder) {
	e.Uint32(a.MaxItems)
}

func (a *CreateCollectionArgs) Decode(d *codec.Decoder) {
	a.MaxItems = d.Uint32()
}

// TransferCollectionArgs - arguments of fnft.transfer_collection
type TransferCollectionArgs struct {
	Collection CollectionId
	To         account.AccountId
}

func (a TransferCollectionArgs) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Collection))
	a.To.Encode(e)
}

func (a *TransferCollectionArgs) Decode(d *codec.Decoder) {
	a.Collection = CollectionId(d.Uint32())
	a.To.Decode(d)
}

// MintItemArgs - arguments of fnft.mint_item
type MintItemArgs struct {
	Collection CollectionId
	Owner      account.AccountId
	Unique     Unique
}

func (a MintItemArgs) Encode(e *codec.Encoder) {
	e.Uint32(uint32(a.Collection))
	a.Owner.Encode(e)
	a.Unique.Encode(e)
}

func (a *MintItemArgs) Decode(d *codec.Decoder) {
	a.Collection = CollectionId(d.Uint32())
	a.Owner.Decode(d)
	a.Unique.Decode(d)
}

// ItemArgs - arguments of the calls addressing an item and a target
//
// fnft.transfer_item, fnft.transfer_fraction_full, and with a zero
// target fnft.fuse and fnft.burn_item
type ItemArgs struct {
	Fingerprint Fingerprint
	To          account.AccountId
}

func (a ItemArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Fingerprint[:])
	a.To.Encode(e)
}

func (a *ItemArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Fingerprint[:])
	a.To.Decode(d)
}

// FractionalizeArgs - arguments of fnft.fractionalize
type FractionalizeArgs struct {
	Fingerprint Fingerprint
	Total       uint64
	Limited     bool
}

func (a FractionalizeArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Fingerprint[:])
	e.Uint64(a.Total)
	e.Bool(a.Limited)
}

func (a *FractionalizeArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Fingerprint[:])
	a.Total = d.Uint64()
	a.Limited = d.Bool()
}

// AmountArgs - arguments of fnft.mint_fraction, fnft.transfer_fraction
// and, ignoring the target, fnft.burn_fraction
type AmountArgs struct {
	Fingerprint Fingerprint
	To          account.AccountId
	Amount      uint64
}

func (a AmountArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Fingerprint[:])
	a.To.Encode(e)
	e.Uint64(a.Amount)
}

func (a *AmountArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Fingerprint[:])
	a.To.Decode(d)
	a.Amount = d.Uint64()
}

// HoldArgs - arguments of fnft.hold_fraction and fnft.unhold_fraction
type HoldArgs struct {
	Fingerprint Fingerprint
	Holder      HolderId
	Guard       uint32
}

func (a HoldArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Fingerprint[:])
	e.Fixed(a.Holder[:])
	e.Uint32(a.Guard)
}

func (a *HoldArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Fingerprint[:])
	d.Fixed(a.Holder[:])
	a.Guard = d.Uint32()
}

// Register - add the public calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	functions := []struct {
		index   uint8
		name    string
		weight  uint64
		handler runtime.Handler
	}{
		{FnCreateCollection, "create_collection", 30000, createCollection},
		{FnTransferCollection, "transfer_collection", 20000, transferCollection},
		{FnMintItem, "mint_item", 40000, mintItem},
		{FnTransferItem, "transfer_item", 20000, transferItem},
		{FnFractionalize, "fractionalize", 60000, fractionalize},
		{FnMintFraction, "mint_fraction", 30000, mintFraction},
		{FnTransferFraction, "transfer_fraction", 30000, transferFraction},
		{FnTransferFractionFull, "transfer_fraction_full", 30000, transferFractionFull},
		{FnHoldFraction, "hold_fraction", 15000, holdFraction},
		{FnUnholdFraction, "unhold_fraction", 15000, unholdFraction},
		{FnFuse, "fuse", 60000, fuse},
		{FnBurnItem, "burn_item", 30000, burnItem},
		{FnBurnFraction, "burn_fraction", 30000, burnFraction},
	}
	for _, f := range functions {
		d.Register(constants.ModuleFnft, moduleName, f.index, runtime.Function{
			Name:    f.name,
			Weight:  f.weight,
			Handler: f.handler,
		})
	}
}

func createCollection(ctx *runtime.Context, args []byte) error {
	a := CreateCollectionArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = CreateCollection(ctx, sender, a.MaxItems)
	return err
}

func transferCollection(ctx *runtime.Context, args []byte) error {
	a := TransferCollectionArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return TransferCollection(ctx, a.Collection, sender, a.To)
}

// only the collection owner mints, the item may go to anyone
func mintItem(ctx *runtime.Context, args []byte) error {
	a := MintItemArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	c, err := GetCollection(ctx.Tx, ctx.DB, a.Collection)
	if nil != err {
		return err
	}
	if c.Owner != sender {
		return ErrWrongOwner
	}
	_, err = MintItem(ctx, a.Collection, a.Owner, a.Unique)
	return err
}

func transferItem(ctx *runtime.Context, args []byte) error {
	a := ItemArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return TransferItem(ctx, a.Fingerprint, sender, a.To)
}

func fractionalize(ctx *runtime.Context, args []byte) error {
	a := FractionalizeArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Fractionalize(ctx, a.Fingerprint, sender, a.Total, a.Limited)
	return err
}

// only the owner of record of the item extends its supply
func mintFraction(ctx *runtime.Context, args []byte) error {
	a := AmountArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	item, err := GetItem(ctx.Tx, ctx.DB, a.Fingerprint)
	if nil != err {
		return err
	}
	if item.Owner != sender {
		return ErrWrongOwner
	}
	return MintFraction(ctx, a.Fingerprint, a.To, a.Amount)
}

func transferFraction(ctx *runtime.Context, args []byte) error {
	a := AmountArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return TransferFraction(ctx, a.Fingerprint, sender, a.To, a.Amount)
}

func transferFractionFull(ctx *runtime.Context, args []byte) error {
	a := ItemArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return TransferFractionFull(ctx, a.Fingerprint, sender, a.To)
}

func holdFraction(ctx *runtime.Context, args []byte) error {
	a := HoldArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return HoldFraction(ctx, sender, a.Fingerprint, a.Holder, a.Guard)
}

func unholdFraction(ctx *runtime.Context, args []byte) error {
	a := HoldArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return UnholdFraction(ctx, sender, a.Fingerprint, a.Holder, a.Guard)
}

func fuse(ctx *runtime.Context, args []byte) error {
	a := ItemArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Fuse(ctx, a.Fingerprint, sender)
}

func burnItem(ctx *runtime.Context, args []byte) error {
	a := ItemArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return BurnItem(ctx, a.Fingerprint, sender)
}

func burnFraction(ctx *runtime.Context, args []byte) error {
	a := AmountArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return BurnFraction(ctx, a.Fingerprint, sender, a.Amount)
}
