// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package agreement

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// agreement functions
const (
	FnCreate = 0
	FnSign   = 1
	FnCancel = 2
)

const moduleName = "agreement"

// CreateArgs - arguments of create
type CreateArgs struct {
	Parties []account.AccountId
	Terms   runtime.Hash
}

func (a CreateArgs) Encode(e *codec.Encoder) {
	account.EncodeList(e, a.Parties)
	a.Terms.Encode(e)
}

func (a *CreateArgs) Decode(d *codec.Decoder) {
	a.Parties = account.DecodeList(d)
	a.Terms.Decode(d)
}

// IdArgs - arguments of sign and cancel
type IdArgs struct {
	Id uint64
}

func (a IdArgs) Encode(e *codec.Encoder) {
	e.Uint64(a.Id)
}

func (a *IdArgs) Decode(d *codec.Decoder) {
	a.Id = d.Uint64()
}

// Register - add the agreement calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleAgreement, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  15000,
		Handler: create,
	})
	d.Register(constants.ModuleAgreement, moduleName, FnSign, runtime.Function{
		Name:    "sign",
		Weight:  10000,
		Handler: sign,
	})
	d.Register(constants.ModuleAgreement, moduleName, FnCancel, runtime.Function{
		Name:    "cancel",
		Weight:  10000,
		Handler: cancel,
	})
}

func create(ctx *runtime.Context, args []byte) error {
	a := CreateArgs{}
	creator, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Create(ctx, creator, a.Parties, a.Terms)
	return err
}

func sign(ctx *runtime.Context, args []byte) error {
	a := IdArgs{}
	who, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Sign(ctx, who, a.Id)
	return err
}

func cancel(ctx *runtime.Context, args []byte) error {
	a := IdArgs{}
	who, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Cancel(ctx, who, a.Id)
}
