// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// proposal functions
const (
	FnPropose = 0
	FnDecide  = 1
	FnExpire  = 2
)

const moduleName = "proposal"

// blocks an expire stays valid in the pool
const expireLongevity = 64

// ProposeArgs - a batch and an optional caller chosen id
type ProposeArgs struct {
	Batch []Item
	Id    *ProposalId
}

func (a ProposeArgs) Encode(e *codec.Encoder) {
	EncodeBatch(e, a.Batch)
	if e.Option(nil != a.Id) {
		e.Fixed(a.Id[:])
	}
}

func (a *ProposeArgs) Decode(d *codec.Decoder) {
	a.Batch = DecodeBatch(d)
	a.Id = nil
	if d.Option() {
		a.Id = &ProposalId{}
		d.Fixed(a.Id[:])
	}
}

// DecideArgs - a decision with the weight the caller accepts for the
// batch
type DecideArgs struct {
	Id         ProposalId
	Decision   Decision
	WeightHint uint64
}

func (a DecideArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
	e.Uint8(uint8(a.Decision))
	e.Uint64(a.WeightHint)
}

func (a *DecideArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
	a.Decision = Decision(d.Uint8())
	a.WeightHint = d.Uint64()
}

// ExpireArgs - the proposal to remove
type ExpireArgs struct {
	Id ProposalId
}

func (a ExpireArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Id[:])
}

func (a *ExpireArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Id[:])
}

// ProposeCall - helper for clients and nested batches
func ProposeCall(batch []Item, id *ProposalId) runtime.Call {
	return runtime.NewCall(constants.ModuleProposal, FnPropose, ProposeArgs{Batch: batch, Id: id})
}

// DecideCall - helper for clients and nested batches
func DecideCall(id ProposalId, decision Decision, weightHint uint64) runtime.Call {
	return runtime.NewCall(constants.ModuleProposal, FnDecide, DecideArgs{Id: id, Decision: decision, WeightHint: weightHint})
}

// ExpireCall - the unsigned call submitted once a proposal is stale
func ExpireCall(id ProposalId) runtime.Call {
	return runtime.NewCall(constants.ModuleProposal, FnExpire, ExpireArgs{Id: id})
}

// Register - add the proposal calls to a dispatcher
func Register(d *runtime.Dispatcher, authorities Authorities) *Engine {
	engine := New(authorities)
	d.Register(constants.ModuleProposal, moduleName, FnPropose, runtime.Function{
		Name:    "propose",
		Weight:  20000,
		Handler: propose,
	})
	d.Register(constants.ModuleProposal, moduleName, FnDecide, runtime.Function{
		Name:    "decide",
		Weight:  20000,
		Handler: engine.decide,
	})
	d.Register(constants.ModuleProposal, moduleName, FnExpire, runtime.Function{
		Name:     "expire",
		Weight:   10000,
		Handler:  expire,
		Unsigned: validateExpire,
	})
	return engine
}

func propose(ctx *runtime.Context, args []byte) error {
	a := ProposeArgs{}
	author, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Propose(ctx, author, a.Batch, a.Id)
	return err
}

func (engine *Engine) decide(ctx *runtime.Context, args []byte) error {
	a := DecideArgs{}
	member, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return engine.Decide(ctx, member, a.Id, a.Decision, a.WeightHint)
}

func expire(ctx *runtime.Context, args []byte) error {
	err := ctx.Origin.EnsureNone()
	if nil != err {
		return err
	}
	a := ExpireArgs{}
	err = codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	return Expire(ctx, a.Id)
}

// only stale proposals may be expired, one pool entry per proposal
func validateExpire(ctx *runtime.Context, args []byte) (runtime.Validity, error) {
	a := ExpireArgs{}
	err := codec.Unmarshal(args, &a)
	if nil != err {
		return runtime.Validity{}, err
	}
	p, err := Get(ctx.Tx, ctx.DB, a.Id)
	if nil != err {
		return runtime.Validity{}, err
	}
	if !expired(ctx, p) {
		return runtime.Validity{}, ErrNotExpired
	}
	return runtime.Validity{
		Provides:  append([]byte("proposal.expire:"), a.Id[:]...),
		Longevity: expireLongevity,
	}, nil
}
