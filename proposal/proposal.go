// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// Authorities - resolves a batch signer that is decided by a group
//
// returns the members and how many approvals the signer needs, false if
// the signer is an ordinary account
type Authorities interface {
	Authority(tx storage.Transaction, db *storage.Database, signer account.AccountId) ([]account.AccountId, int, bool)
}

// Engine - the proposal engine bound to its authorities
type Engine struct {
	log         *logger.L
	authorities Authorities
}

// New - create an engine, authorities may be nil if only plain accounts
// sign batches
func New(authorities Authorities) *Engine {
	return &Engine{
		log:         logger.New("proposal"),
		authorities: authorities,
	}
}

// Get - a stored proposal, always pending
func Get(tx storage.Transaction, db *storage.Database, id ProposalId) (*Proposal, error) {
	buffer := tx.Get(db.Proposals, id[:])
	if nil == buffer {
		return nil, ErrNotFound
	}
	p := &Proposal{}
	err := codec.Unmarshal(buffer, p)
	if nil != err {
		logger.Panicf("proposal: %s is corrupt: %s", id, err)
	}
	return p, nil
}

// ListByCreator - proposals of an author in creation order
func ListByCreator(tx storage.Transaction, db *storage.Database, author account.AccountId, start int, count int) ([]Proposal, error) {
	result := make([]Proposal, 0)
	_, err := storage.Page(tx, db.ProposalsByCreator, author[:], start, count, func(key []byte, value []byte) {
		id := ProposalId{}
		copy(id[:], value)
		p, err := Get(tx, db, id)
		if nil != err {
			logger.Panicf("proposal: index: %x points to missing: %s", key, id)
		}
		result = append(result, *p)
	})
	return result, err
}

// Depth - number of nested levels of a batch tree, the batch itself is
// level one
func Depth(batch []Item) (int, error) {
	depth := 0
	err := walk(batch, func(level int, items []Item) error {
		depth = level
		return nil
	})
	return depth, err
}

// breadth first over the levels of nested proposals
func walk(batch []Item, visit func(level int, items []Item) error) error {
	level := batch
	for depth := 1; len(level) > 0; depth += 1 {
		err := visit(depth, level)
		if nil != err {
			return err
		}
		next := make([]Item, 0)
		for _, item := range level {
			if !item.Call.Is(constants.ModuleProposal, FnPropose) {
				continue
			}
			a := ProposeArgs{}
			err := codec.Unmarshal(item.Call.Args, &a)
			if nil != err {
				return err
			}
			next = append(next, a.Batch...)
		}
		level = next
	}
	return nil
}

// check the bounds of the tree and that nothing inside decides the new
// proposal
func checkTree(p *runtime.Parameters, id ProposalId, batch []Item) error {
	return walk(batch, func(level int, items []Item) error {
		if level > p.DepthLimit {
			return ErrReachDepthLimit
		}
		if len(items) > p.SizeLimit {
			return ErrReachSizeLimit
		}
		for _, item := range items {
			if !item.Call.Is(constants.ModuleProposal, FnDecide) {
				continue
			}
			a := DecideArgs{}
			err := codec.Unmarshal(item.Call.Args, &a)
			if nil != err {
				return err
			}
			if a.Id == id {
				return ErrSelfReference
			}
		}
		return nil
	})
}

// Propose - store a batch for the decision of its signers
//
// the id defaults to the timepoint of the current extrinsic
func Propose(ctx *runtime.Context, author account.AccountId, batch []Item, external *ProposalId) (ProposalId, error) {
	if 0 == len(batch) {
		return ProposalId{}, ErrEmptyBatch
	}

	var id ProposalId
	if nil != external {
		id = *external
	} else {
		id = Timepoint(ctx.Block, ctx.ExtrinsicIndex(), ctx.NextSequence())
	}
	if ctx.Tx.Has(ctx.DB.Proposals, id[:]) {
		return id, ErrExists
	}

	for _, item := range batch {
		_, err := ctx.Dispatcher.Lookup(item.Call)
		if nil != err {
			return id, err
		}
	}

	err := checkTree(ctx.Parameters, id, batch)
	if nil != err {
		return id, err
	}

	signers := Signers(batch)
	p := &Proposal{
		Id:        id,
		Author:    author,
		Batch:     batch,
		Decisions: make([]Ballot, len(signers)),
		State:     StatePending,
		CreatedAt: ctx.Timestamp,
	}
	for i, s := range signers {
		p.Decisions[i] = Ballot{Signer: s, Decision: Pending}
	}

	q := &queue{}
	q.push(createProposal{p})
	q.push(depositEvent{Proposed{Id: id, Author: author, Signers: signers}})
	q.drain(ctx)
	return id, nil
}

// Decide - record the decision of a member and resolve the proposal
// when it is complete
//
// a member decides as itself if it is a signer, and votes towards every
// group signer it belongs to
func (engine *Engine) Decide(ctx *runtime.Context, member account.AccountId, id ProposalId, decision Decision, weightHint uint64) error {
	if decision > Reject {
		return ErrUnknownDecision
	}
	p, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}

	q := &queue{}
	matched := false
	for i := range p.Decisions {
		b := &p.Decisions[i]
		if b.Signer == member {
			b.Decision = decision
		} else if members, approvals, ok := engine.authority(ctx, b.Signer); ok && contains(members, member) {
			b.vote(member, decision, approvals)
		} else {
			continue
		}
		matched = true
		switch decision {
		case Approve:
			q.push(depositEvent{Approved{Id: id, Member: member, Signer: b.Signer}})
		case Pending:
			q.push(depositEvent{RevokedApproval{Id: id, Member: member, Signer: b.Signer}})
		}
	}
	if !matched {
		return ErrNotMember
	}

	switch p.outcome() {
	case Reject:
		q = &queue{}
		p.State = StateRejected
		q.push(deleteProposal{id})
		q.push(depositEvent{Resolved{Id: id, State: p.State}})

	case Approve:
		weight, err := batchWeight(ctx, p.Batch)
		if nil != err {
			return err
		}
		if weightHint < weight {
			return ErrWeightHintTooLow
		}
		q = &queue{}
		resolved := engine.dispatch(ctx, p)
		q.push(deleteProposal{id})
		q.push(depositEvent{resolved})

	default:
		q.push(updateProposal{p})
	}

	q.drain(ctx)
	return nil
}

// run the whole batch in one savepoint, the first failure undoes every
// item before it
func (engine *Engine) dispatch(ctx *runtime.Context, p *Proposal) Resolved {
	ctx.Tx.Begin()
	mark := ctx.Events.Mark()
	for i, item := range p.Batch {
		err := ctx.Dispatch(runtime.Signed(item.Signer), item.Call)
		if nil == err {
			continue
		}
		engine.log.Debugf("proposal: %s  item: %d  failed: %s", p.Id, i, err)
		logger.PanicIfError("proposal abort", ctx.Tx.Abort())
		ctx.Events.Truncate(mark)
		d := fault.DiscriminantOf(err)
		p.State = StateFailed
		return Resolved{Id: p.Id, State: p.State, Error: &d}
	}
	logger.PanicIfError("proposal commit", ctx.Tx.Commit())
	p.State = StateDone
	return Resolved{Id: p.Id, State: p.State}
}

func (engine *Engine) authority(ctx *runtime.Context, signer account.AccountId) ([]account.AccountId, int, bool) {
	if nil == engine.authorities {
		return nil, 0, false
	}
	return engine.authorities.Authority(ctx.Tx, ctx.DB, signer)
}

// Expire - remove a proposal that outlived its time to live
func Expire(ctx *runtime.Context, id ProposalId) error {
	p, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if !expired(ctx, p) {
		return ErrNotExpired
	}
	q := &queue{}
	q.push(deleteProposal{id})
	q.push(depositEvent{Expired{Id: id}})
	q.drain(ctx)
	return nil
}

func expired(ctx *runtime.Context, p *Proposal) bool {
	return ctx.Timestamp >= p.CreatedAt && ctx.Timestamp-p.CreatedAt >= ctx.Parameters.ProposalTtl
}

func batchWeight(ctx *runtime.Context, batch []Item) (uint64, error) {
	total := uint64(0)
	for _, item := range batch {
		w, err := ctx.Dispatcher.Weight(item.Call)
		if nil != err {
			return 0, err
		}
		total += w
	}
	return total, nil
}

func contains(list []account.AccountId, a account.AccountId) bool {
	for _, item := range list {
		if item == a {
			return true
		}
	}
	return false
}
