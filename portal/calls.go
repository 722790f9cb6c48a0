// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// portal functions
const (
	FnCreate        = 0
	FnUpdate        = 1
	FnSign          = 2
	FnExec          = 3
	FnSchedule      = 4
	FnExecPostponed = 5
)

const moduleName = "portal"

// blocks an exec_postponed stays valid in the pool
const postponedLongevity = 64

func encodeMetadata(e *codec.Encoder, m *dao.Metadata) {
	if e.Option(nil != m) {
		e.Fixed(m[:])
	}
}

func decodeMetadata(d *codec.Decoder) *dao.Metadata {
	if !d.Option() {
		return nil
	}
	m := &dao.Metadata{}
	d.Fixed(m[:])
	return m
}

// CreateArgs - the delegate and optional metadata of a new portal
type CreateArgs struct {
	Delegate account.AccountId
	Metadata *dao.Metadata
}

func (a CreateArgs) Encode(e *codec.Encoder) {
	a.Delegate.Encode(e)
	encodeMetadata(e, a.Metadata)
}

func (a *CreateArgs) Decode(d *codec.Decoder) {
	a.Delegate.Decode(d)
	a.Metadata = decodeMetadata(d)
}

// UpdateArgs - nil fields are left unchanged
type UpdateArgs struct {
	Delegate *account.AccountId
	Metadata *dao.Metadata
}

func (a UpdateArgs) Encode(e *codec.Encoder) {
	if e.Option(nil != a.Delegate) {
		a.Delegate.Encode(e)
	}
	encodeMetadata(e, a.Metadata)
}

func (a *UpdateArgs) Decode(d *codec.Decoder) {
	a.Delegate = nil
	if d.Option() {
		a.Delegate = &account.AccountId{}
		a.Delegate.Decode(d)
	}
	a.Metadata = decodeMetadata(d)
}

// SignArgs - the complete encoded extrinsic to countersign
type SignArgs struct {
	Extrinsic []byte
}

func (a SignArgs) Encode(e *codec.Encoder) {
	e.ByteSlice(a.Extrinsic)
}

func (a *SignArgs) Decode(d *codec.Decoder) {
	a.Extrinsic = d.ByteSlice()
}

// ExecArgs - a call routed through a portal
type ExecArgs struct {
	Portal PortalId
	Call   runtime.Call
}

func (a ExecArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Portal[:])
	a.Call.Encode(e)
}

func (a *ExecArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Portal[:])
	a.Call.Decode(d)
}

// ScheduleArgs - a call to run at a later block
type ScheduleArgs struct {
	Call runtime.Call
	Due  uint64
}

func (a ScheduleArgs) Encode(e *codec.Encoder) {
	a.Call.Encode(e)
	e.Uint64(a.Due)
}

func (a *ScheduleArgs) Decode(d *codec.Decoder) {
	a.Call.Decode(d)
	a.Due = d.Uint64()
}

// PostponedArgs - identifies a scheduled call and repeats it
type PostponedArgs struct {
	Portal   PortalId
	Sequence uint64
	Call     runtime.Call
}

func (a PostponedArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Portal[:])
	e.Uint64(a.Sequence)
	a.Call.Encode(e)
}

func (a *PostponedArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Portal[:])
	a.Sequence = d.Uint64()
	a.Call.Decode(d)
}

// ExecCall - the call a client wraps for countersigning
func ExecCall(id PortalId, call runtime.Call) runtime.Call {
	return runtime.NewCall(constants.ModulePortal, FnExec, ExecArgs{Portal: id, Call: call})
}

// ExecPostponedCall - the unsigned call of the off-chain worker
func ExecPostponedCall(p Postponed) runtime.Call {
	return runtime.NewCall(constants.ModulePortal, FnExecPostponed, PostponedArgs{
		Portal:   p.Portal,
		Sequence: p.Sequence,
		Call:     p.Call,
	})
}

// Register - add the portal calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModulePortal, moduleName, FnCreate, runtime.Function{
		Name:    "create",
		Weight:  20000,
		Handler: create,
	})
	d.Register(constants.ModulePortal, moduleName, FnUpdate, runtime.Function{
		Name:    "update",
		Weight:  20000,
		Handler: update,
	})
	d.Register(constants.ModulePortal, moduleName, FnSign, runtime.Function{
		Name:    "sign",
		Weight:  20000,
		Handler: sign,
	})
	d.Register(constants.ModulePortal, moduleName, FnExec, runtime.Function{
		Name:    "exec",
		Weight:  20000,
		Handler: exec,
	})
	d.Register(constants.ModulePortal, moduleName, FnSchedule, runtime.Function{
		Name:    "schedule",
		Weight:  20000,
		Handler: schedule,
	})
	d.Register(constants.ModulePortal, moduleName, FnExecPostponed, runtime.Function{
		Name:     "exec_postponed",
		Weight:   20000,
		Handler:  execPostponed,
		Unsigned: validatePostponed,
	})
}

func create(ctx *runtime.Context, args []byte) error {
	a := CreateArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Create(ctx, owner, a.Delegate, a.Metadata)
	return err
}

func update(ctx *runtime.Context, args []byte) error {
	a := UpdateArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Update(ctx, owner, a.Delegate, a.Metadata)
	return err
}

func sign(ctx *runtime.Context, args []byte) error {
	a := SignArgs{}
	delegate, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Sign(ctx, delegate, a.Extrinsic)
	return err
}

func exec(ctx *runtime.Context, args []byte) error {
	a := ExecArgs{}
	_, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Exec(ctx, a.Portal, a.Call)
}

func schedule(ctx *runtime.Context, args []byte) error {
	a := ScheduleArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Schedule(ctx, owner, a.Call, a.Due)
	return err
}

func execPostponed(ctx *runtime.Context, args []byte) error {
	err := ctx.Origin.EnsureNone()
	if nil != err {
		return err
	}
	a := PostponedArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	return ExecPostponed(ctx, a)
}

// the stored call must exist, match exactly and be due
func validatePostponed(ctx *runtime.Context, args []byte) (runtime.Validity, error) {
	a := PostponedArgs{}
	err := codec.Unmarshal(args, &a)
	if nil != err {
		return runtime.Validity{}, err
	}
	p, err := checkPostponed(ctx.Tx, ctx.DB, ctx.Block, a)
	if nil != err {
		return runtime.Validity{}, err
	}
	provides := append([]byte("portal.postponed:"), p.Portal[:]...)
	provides = append(provides, storage.Uint64Key(p.Sequence)...)
	return runtime.Validity{
		Provides:  provides,
		Longevity: postponedLongevity,
	}, nil
}
