// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/storage"
)

// system functions
const (
	FnRemark = 0
)

const systemName = "system"

// Remark - arguments of system.remark
type Remark struct {
	Data []byte
}

func (r Remark) Encode(e *codec.Encoder) {
	e.ByteSlice(r.Data)
}

func (r *Remark) Decode(d *codec.Decoder) {
	r.Data = d.ByteSlice()
}

// Remarked - a remark was dispatched
type Remarked struct {
	Sender account.AccountId `json:"sender"`
	Hash   Hash              `json:"hash"`
}

func (ev Remarked) EventName() string { return "Remarked" }
func (ev Remarked) Encode(e *codec.Encoder) {
	ev.Sender.Encode(e)
	ev.Hash.Encode(e)
}

// ExtrinsicSuccess - deposited after each successful extrinsic
type ExtrinsicSuccess struct {
	Weight uint64 `json:"weight"`
}

func (ev ExtrinsicSuccess) EventName() string { return "ExtrinsicSuccess" }
func (ev ExtrinsicSuccess) Encode(e *codec.Encoder) {
	e.Uint64(ev.Weight)
}

// ExtrinsicFailed - deposited after each failed extrinsic
type ExtrinsicFailed struct {
	Error  fault.Discriminant `json:"error"`
	Weight uint64             `json:"weight"`
}

func (ev ExtrinsicFailed) EventName() string { return "ExtrinsicFailed" }
func (ev ExtrinsicFailed) Encode(e *codec.Encoder) {
	e.Uint8(ev.Error.Module)
	e.Uint8(ev.Error.Index)
	e.String(ev.Error.Tag)
	e.Uint64(ev.Weight)
}

// RegisterSystem - add the system calls to a dispatcher
func RegisterSystem(d *Dispatcher) {
	d.Register(constants.ModuleSystem, systemName, FnRemark, Function{
		Name:    "remark",
		Weight:  1000,
		Handler: remark,
	})
}

// remark - record a hash of arbitrary data
func remark(ctx *Context, args []byte) error {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	r := Remark{}
	err = codec.Unmarshal(args, &r)
	if nil != err {
		return err
	}
	ctx.Deposit(constants.ModuleSystem, Remarked{
		Sender: sender,
		Hash:   HashOf(r.Data),
	})
	return nil
}

// Nonce - current nonce of an account
func Nonce(tx storage.Transaction, db *storage.Database, a account.AccountId) uint64 {
	n, _ := storage.GetN(tx, db.Nonces, a[:])
	return n
}

// IncrementNonce - after a signed extrinsic is admitted
func IncrementNonce(tx storage.Transaction, db *storage.Database, a account.AccountId) {
	storage.PutN(tx, db.Nonces, a[:], Nonce(tx, db, a)+1)
}
