// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// operation - a write deferred to the end of a handler
type operation interface {
	apply(ctx *runtime.Context)
}

// queue - deferred writes in FIFO order
//
// only drained when the handler succeeds, so an error return leaves
// nothing behind
type queue struct {
	ops []operation
}

func (q *queue) push(op operation) {
	q.ops = append(q.ops, op)
}

func (q *queue) drain(ctx *runtime.Context) {
	for _, op := range q.ops {
		op.apply(ctx)
	}
	q.ops = nil
}

type createProposal struct {
	proposal *Proposal
}

func (op createProposal) apply(ctx *runtime.Context) {
	p := op.proposal
	n := ctx.DB.NextCount(ctx.Tx, "proposal.creator")
	index := storage.Key(p.Author[:], storage.Uint64Key(n))
	ctx.Tx.Put(ctx.DB.Proposals, p.Id[:], codec.Marshal(p))
	ctx.Tx.Put(ctx.DB.ProposalsByCreator, index, p.Id[:])
	ctx.Tx.Put(ctx.DB.ProposalCreator, p.Id[:], index)
}

type updateProposal struct {
	proposal *Proposal
}

func (op updateProposal) apply(ctx *runtime.Context) {
	ctx.Tx.Put(ctx.DB.Proposals, op.proposal.Id[:], codec.Marshal(op.proposal))
}

type deleteProposal struct {
	id ProposalId
}

func (op deleteProposal) apply(ctx *runtime.Context) {
	index := ctx.Tx.Get(ctx.DB.ProposalCreator, op.id[:])
	if nil != index {
		ctx.Tx.Delete(ctx.DB.ProposalsByCreator, index)
		ctx.Tx.Delete(ctx.DB.ProposalCreator, op.id[:])
	}
	ctx.Tx.Delete(ctx.DB.Proposals, op.id[:])
}

type depositEvent struct {
	event runtime.Event
}

func (op depositEvent) apply(ctx *runtime.Context) {
	ctx.Deposit(constants.ModuleProposal, op.event)
}
