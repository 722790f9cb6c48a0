// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// public functions of the module
const (
	FnCreate         = 0
	FnAlterAuthority = 1
	FnUpdateMetadata = 2
	FnOnBehalf       = 3
)

const moduleName = "dao"

func encodeMetadata(e *codec.Encoder, m *Metadata) {
	if e.Option(nil != m) {
		e.Fixed(m[:])
	}
}

func decodeMetadata(d *codec.Decoder) *Metadata {
	if !d.Option() {
		return nil
	}
	m := &Metadata{}
	d.Fixed(m[:])
	return m
}

// CreateArgs - arguments of dao.create
type CreateArgs struct {
	Id        DaoId
	Authority Authority
	Metadata  *Metadata
}

func (a CreateArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
	a.Authority.Encode(e)
	encodeMetadata(e, a.Metadata)
}

func (a *CreateArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
	a.Authority.Decode(d)
	a.Metadata = decodeMetadata(d)
}

// MetadataArgs - arguments of dao.update_metadata
type MetadataArgs struct {
	Metadata *Metadata
}

func (a MetadataArgs) Encode(e *codec.Encoder) {
	encodeMetadata(e, a.Metadata)
}

func (a *MetadataArgs) Decode(d *codec.Decoder) {
	a.Metadata = decodeMetadata(d)
}

// OnBehalfArgs - arguments of dao.on_behalf
type OnBehalfArgs struct {
	Id   DaoId
	Call runtime.Call
}

func (a OnBehalfArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
	a.Call.Encode(e)
}

func (a *OnBehalfArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
	a.Call.Decode(d)
}

// Register - add the public calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleDao, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  50000,
		Handler: create,
	})
	d.Register(constants.ModuleDao, moduleName, FnAlterAuthority, runtime.Function{
		Name:    "alter_authority",
		Weight:  40000,
		Handler: alterAuthority,
	})
	d.Register(constants.ModuleDao, moduleName, FnUpdateMetadata, runtime.Function{
		Name:    "update_metadata",
		Weight:  10000,
		Handler: updateMetadata,
	})
	d.Register(constants.ModuleDao, moduleName, FnOnBehalf, runtime.Function{
		Name:    "on_behalf",
		Weight:  20000,
		Handler: onBehalf,
	})
}

func create(ctx *runtime.Context, args []byte) error {
	a := CreateArgs{}
	sender, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Create(ctx, sender, a.Id, a.Authority, a.Metadata)
	return err
}

func alterAuthority(ctx *runtime.Context, args []byte) error {
	a := Change{}
	_, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return AlterAuthority(ctx, a)
}

func updateMetadata(ctx *runtime.Context, args []byte) error {
	a := MetadataArgs{}
	_, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return UpdateMetadata(ctx, a.Metadata)
}

func onBehalf(ctx *runtime.Context, args []byte) error {
	a := OnBehalfArgs{}
	_, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return OnBehalf(ctx, a.Id, a.Call)
}
