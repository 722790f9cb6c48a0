// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/ipchaind/storage"
)

// BlockState - accumulated over all extrinsics of a block
type BlockState struct {
	Weight uint64
	Length uint64
}

// ExtrinsicState - shared by every nested dispatch of one extrinsic
type ExtrinsicState struct {
	Hash   Hash
	Index  uint32
	Length int

	// nested creations within the extrinsic, e.g. proposals of a batch
	sequence uint32
}

// Context - everything a call handler can see
type Context struct {
	DB         *storage.Database
	Tx         storage.Transaction
	Block      uint64
	Timestamp  uint64 // seconds since the epoch, from the block header
	Phase      Phase
	Origin     Origin
	Events     *EventLog
	Dispatcher *Dispatcher
	Parameters *Parameters

	BlockState *BlockState
	Extrinsic  *ExtrinsicState
}

// NewBlockContext - context for the hooks of a block
func NewBlockContext(db *storage.Database, tx storage.Transaction, block uint64, timestamp uint64, dispatcher *Dispatcher, parameters *Parameters) *Context {
	return &Context{
		DB:         db,
		Tx:         tx,
		Block:      block,
		Timestamp:  timestamp,
		Phase:      Phase{Kind: PhaseInitialization},
		Origin:     Root(),
		Events:     NewEventLog(block),
		Dispatcher: dispatcher,
		Parameters: parameters,
		BlockState: &BlockState{},
		Extrinsic:  &ExtrinsicState{},
	}
}

// ForExtrinsic - context for applying the extrinsic at index
func (ctx *Context) ForExtrinsic(index uint32, hash Hash, length int, origin Origin) *Context {
	c := *ctx
	c.Phase = Phase{Kind: PhaseApplyExtrinsic, Index: index}
	c.Origin = origin
	c.Extrinsic = &ExtrinsicState{
		Hash:   hash,
		Index:  index,
		Length: length,
	}
	return &c
}

// ForPhase - context for initialization or finalization
func (ctx *Context) ForPhase(kind PhaseKind) *Context {
	c := *ctx
	c.Phase = Phase{Kind: kind}
	c.Origin = Root()
	c.Extrinsic = &ExtrinsicState{}
	return &c
}

// WithOrigin - same extrinsic, different caller
func (ctx *Context) WithOrigin(origin Origin) *Context {
	c := *ctx
	c.Origin = origin
	return &c
}

// Deposit - record an event for the current phase
func (ctx *Context) Deposit(module uint8, ev Event) {
	ctx.Events.Deposit(ctx.Phase, module, ev)
}

// Dispatch - run another call as part of this extrinsic
func (ctx *Context) Dispatch(origin Origin, call Call) error {
	return ctx.Dispatcher.Dispatch(ctx.WithOrigin(origin), call)
}

// NextSequence - allocate the next nested creation number of the extrinsic
func (ctx *Context) NextSequence() uint32 {
	n := ctx.Extrinsic.sequence
	ctx.Extrinsic.sequence += 1
	return n
}

// ExtrinsicIndex - position of the current extrinsic in the block
func (ctx *Context) ExtrinsicIndex() uint32 {
	return ctx.Extrinsic.Index
}
