// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// domain functions
const (
	FnCreate   = 0
	FnUpdate   = 1
	FnTransfer = 2
)

const moduleName = "domain"

// MetadataArgs - arguments of create and update
type MetadataArgs struct {
	Name     string
	Metadata *dao.Metadata
}

func (a MetadataArgs) Encode(e *codec.Encoder) {
	e.String(a.Name)
	if e.Option(nil != a.Metadata) {
		e.Fixed(a.Metadata[:])
	}
}

func (a *MetadataArgs) Decode(d *codec.Decoder) {
	a.Name = d.String()
	a.Metadata = nil
	if d.Option() {
		a.Metadata = &dao.Metadata{}
		d.Fixed(a.Metadata[:])
	}
}

// TransferArgs - arguments of transfer
type TransferArgs struct {
	Name string
	To   account.AccountId
}

func (a TransferArgs) Encode(e *codec.Encoder) {
	e.String(a.Name)
	a.To.Encode(e)
}

func (a *TransferArgs) Decode(d *codec.Decoder) {
	a.Name = d.String()
	a.To.Decode(d)
}

// Register - add the domain calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleDomain, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  10000,
		Handler: create,
	})
	d.Register(constants.ModuleDomain, moduleName, FnUpdate, runtime.Function{
		Name:    "update",
		Weight:  10000,
		Handler: update,
	})
	d.Register(constants.ModuleDomain, moduleName, FnTransfer, runtime.Function{
		Name:    "transfer",
		Weight:  10000,
		Handler: transfer,
	})
}

func create(ctx *runtime.Context, args []byte) error {
	a := MetadataArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Create(ctx, owner, a.Name, a.Metadata)
	return err
}

func update(ctx *runtime.Context, args []byte) error {
	a := MetadataArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Update(ctx, owner, a.Name, a.Metadata)
}

func transfer(ctx *runtime.Context, args []byte) error {
	a := TransferArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Transfer(ctx, owner, a.Name, a.To)
}
