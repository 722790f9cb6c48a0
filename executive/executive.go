// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executive

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// BlockListener - told about every applied block
//
// called with the executive locked so it must only queue the notice
type BlockListener interface {
	BlockImported(header blockrecord.Header, records []runtime.EventRecord)
}

// Executive - applies blocks to the world state
//
// all state transitions go through here one at a time
type Executive struct {
	sync.Mutex
	log        *logger.L
	db         *storage.Database
	dispatcher *runtime.Dispatcher
	parameters *runtime.Parameters
	pipeline   extrinsic.Pipeline
	listeners  []BlockListener
}

// New - create an executive over a database
func New(db *storage.Database, dispatcher *runtime.Dispatcher, parameters *runtime.Parameters, pipeline extrinsic.Pipeline) *Executive {
	return &Executive{
		log:        logger.New("executive"),
		db:         db,
		dispatcher: dispatcher,
		parameters: parameters,
		pipeline:   pipeline,
	}
}

// AddListener - register for block import notices
func (ex *Executive) AddListener(l BlockListener) {
	ex.Lock()
	defer ex.Unlock()
	ex.listeners = append(ex.listeners, l)
}

// Database - the world state
func (ex *Executive) Database() *storage.Database {
	return ex.db
}

// Dispatcher - the routing table
func (ex *Executive) Dispatcher() *runtime.Dispatcher {
	return ex.dispatcher
}

// Parameters - the runtime limits
func (ex *Executive) Parameters() *runtime.Parameters {
	return ex.parameters
}

// Best - the latest applied block header
func (ex *Executive) Best() (blockrecord.Header, bool) {
	return block.Best(ex.db.NewTransaction(), ex.db)
}

// ApplyGenesis - create block 0 from a seeding function
func (ex *Executive) ApplyGenesis(timestamp uint64, seed func(ctx *runtime.Context) error) (blockrecord.Header, error) {
	ex.Lock()
	defer ex.Unlock()

	if block.HasGenesis(ex.db) {
		return blockrecord.Header{}, fault.AlreadyInitialised
	}

	tx := ex.db.NewTransaction()
	ctx := runtime.NewBlockContext(ex.db, tx, 0, timestamp, ex.dispatcher, ex.parameters)

	err := seed(ctx)
	if nil != err {
		tx.Discard()
		return blockrecord.Header{}, err
	}

	b := blockrecord.New(0, runtime.Hash{}, timestamp, nil)
	records := ctx.Events.Records()
	block.Store(tx, ex.db, b.Header, records)
	err = tx.Flush()
	if nil != err {
		return blockrecord.Header{}, err
	}
	ex.log.Infof("genesis: %s", b.Header.Hash())
	ex.notify(b.Header, records)
	return b.Header, nil
}

// ApplyBlock - validate and apply the next block
//
// any invalid extrinsic makes the whole block invalid and nothing is
// written, a call that fails only records ExtrinsicFailed
func (ex *Executive) ApplyBlock(b *blockrecord.Block) ([]runtime.EventRecord, error) {
	ex.Lock()
	defer ex.Unlock()

	err := b.Validate()
	if nil != err {
		return nil, err
	}

	tx := ex.db.NewTransaction()
	ctx, err := ex.startBlock(tx, b.Header.Number, b.Header.ParentHash, b.Header.Timestamp)
	if nil != err {
		return nil, err
	}

	for i, raw := range b.Extrinsics {
		err := ex.applyExtrinsic(ctx, uint32(i), raw)
		if nil != err {
			ex.log.Warnf("block: %d  extrinsic: %d  invalid: %s", b.Header.Number, i, err)
			tx.Discard()
			return nil, err
		}
	}

	err = ex.dispatcher.OnFinalize(ctx.ForPhase(runtime.PhaseFinalization))
	if nil != err {
		tx.Discard()
		return nil, err
	}

	records := ctx.Events.Records()
	block.Store(tx, ex.db, b.Header, records)
	err = tx.Flush()
	if nil != err {
		return nil, err
	}

	ex.log.Infof("block: %d  hash: %s  extrinsics: %d  events: %d", b.Header.Number, b.Header.Hash(), len(b.Extrinsics), len(records))
	ex.notify(b.Header, records)
	return records, nil
}

// BuildBlock - select the candidates that apply cleanly on top of the
// best block, in order
func (ex *Executive) BuildBlock(candidates [][]byte, timestamp uint64) (*blockrecord.Block, [][]byte, error) {
	ex.Lock()
	defer ex.Unlock()

	tx := ex.db.NewTransaction()
	defer tx.Discard()

	best, ok := block.Best(tx, ex.db)
	if !ok {
		return nil, nil, fault.NotInitialised
	}
	if timestamp < best.Timestamp {
		timestamp = best.Timestamp
	}

	ctx, err := ex.startBlock(tx, best.Number+1, best.Hash(), timestamp)
	if nil != err {
		return nil, nil, err
	}

	accepted := make([][]byte, 0, len(candidates))
	rejected := make([][]byte, 0)
	for _, raw := range candidates {
		if len(accepted) >= blockrecord.MaximumExtrinsics {
			break
		}
		tx.Begin()
		mark := ctx.Events.Mark()
		err := ex.applyExtrinsic(ctx, uint32(len(accepted)), raw)
		if nil != err {
			ex.log.Debugf("build: drop extrinsic: %s", err)
			logger.PanicIfError("build abort", tx.Abort())
			ctx.Events.Truncate(mark)
			rejected = append(rejected, raw)
			continue
		}
		logger.PanicIfError("build commit", tx.Commit())
		accepted = append(accepted, raw)
	}

	return blockrecord.New(best.Number+1, best.Hash(), timestamp, accepted), rejected, nil
}

// Validate - check an extrinsic could go into the next block
//
// a nonce ahead of the account is accepted so clients can queue
func (ex *Executive) Validate(raw []byte, timestamp uint64) error {
	ex.Lock()
	defer ex.Unlock()

	tx := ex.db.NewTransaction()
	defer tx.Discard()

	best, ok := block.Best(tx, ex.db)
	if !ok {
		return fault.NotInitialised
	}
	ctx := runtime.NewBlockContext(ex.db, tx, best.Number+1, timestamp, ex.dispatcher, ex.parameters)

	x, err := extrinsic.Parse(raw)
	if nil != err {
		return err
	}
	xctx, info, err := ex.check(ctx, 0, raw, x)
	if nil != err {
		return err
	}
	if !x.IsSigned() {
		return nil
	}
	err = ex.pipeline.PreDispatch(xctx, x, info)
	if fault.FutureTransaction == err {
		return nil
	}
	return err
}

// AdditionalSigned - the implicit signed data for an extrinsic of the
// next block
func (ex *Executive) AdditionalSigned(extra extrinsic.Extra) ([][]byte, error) {
	tx := ex.db.NewTransaction()
	best, ok := block.Best(tx, ex.db)
	if !ok {
		return nil, fault.NotInitialised
	}
	ctx := runtime.NewBlockContext(ex.db, tx, best.Number+1, best.Timestamp, ex.dispatcher, ex.parameters)
	return ex.pipeline.AdditionalSigned(ctx, &extra)
}

// Sign - build a signed extrinsic for the next block
func (ex *Executive) Sign(kp account.KeyPair, call runtime.Call, extra extrinsic.Extra) (*extrinsic.Extrinsic, error) {
	additional, err := ex.AdditionalSigned(extra)
	if nil != err {
		return nil, err
	}
	return extrinsic.NewSigned(kp, call, extra, additional)
}

// check header continuity and run the initialize hooks
func (ex *Executive) startBlock(tx storage.Transaction, number uint64, parent runtime.Hash, timestamp uint64) (*runtime.Context, error) {
	best, ok := block.Best(tx, ex.db)
	if !ok {
		return nil, fault.NotInitialised
	}
	if number != best.Number+1 {
		return nil, fault.InvalidBlockNumber
	}
	if parent != best.Hash() {
		return nil, fault.InvalidParentHash
	}
	if timestamp < best.Timestamp {
		return nil, fault.InvalidTimestamp
	}

	ctx := runtime.NewBlockContext(ex.db, tx, number, timestamp, ex.dispatcher, ex.parameters)
	err := ex.dispatcher.OnInitialize(ctx.ForPhase(runtime.PhaseInitialization))
	if nil != err {
		tx.Discard()
		return nil, err
	}
	return ctx, nil
}

// signature, lookup and unsigned validation
func (ex *Executive) check(ctx *runtime.Context, index uint32, raw []byte, x *extrinsic.Extrinsic) (*runtime.Context, extrinsic.DispatchInfo, error) {
	hash := runtime.HashOf(raw)

	f, err := ex.dispatcher.Lookup(x.Call)
	if nil != err {
		return nil, extrinsic.DispatchInfo{}, err
	}
	info := extrinsic.DispatchInfo{
		Weight: f.Weight,
		Length: len(raw),
	}

	if !x.IsSigned() {
		xctx := ctx.ForExtrinsic(index, hash, len(raw), runtime.None())
		_, err := ex.dispatcher.ValidateUnsigned(xctx, x.Call)
		if nil != err {
			return nil, info, err
		}
		return xctx, info, nil
	}

	s := x.Signature
	xctx := ctx.ForExtrinsic(index, hash, len(raw), runtime.Signed(s.Signer))
	additional, err := ex.pipeline.AdditionalSigned(xctx, &s.Extra)
	if nil != err {
		return nil, info, err
	}
	payload := extrinsic.SigningPayload(x.Call, s.Extra, additional)
	err = account.Verify(s.Signer, payload, s.Signature)
	if nil != err {
		return nil, info, err
	}
	return xctx, info, nil
}

// apply one extrinsic, error only if it is invalid
func (ex *Executive) applyExtrinsic(ctx *runtime.Context, index uint32, raw []byte) error {
	x, err := extrinsic.Parse(raw)
	if nil != err {
		return err
	}

	xctx, info, err := ex.check(ctx, index, raw, x)
	if nil != err {
		return err
	}

	ctx.Tx.Begin()
	mark := ctx.Events.Mark()
	abort := func(err error) error {
		logger.PanicIfError("extrinsic abort", ctx.Tx.Abort())
		ctx.Events.Truncate(mark)
		return err
	}

	if x.IsSigned() {
		err = ex.pipeline.PreDispatch(xctx, x, info)
		if nil != err {
			return abort(err)
		}
	} else {
		err = extrinsic.CheckWeight{}.PreDispatch(xctx, x, info)
		if nil != err {
			return abort(err)
		}
	}

	result := ex.dispatcher.Dispatch(xctx, x.Call)

	if x.IsSigned() {
		err = ex.pipeline.PostDispatch(xctx, x, info, result)
		if nil != err {
			return abort(err)
		}
	}

	if nil == result {
		xctx.Deposit(constants.ModuleSystem, runtime.ExtrinsicSuccess{
			Weight: info.Weight,
		})
	} else {
		xctx.Deposit(constants.ModuleSystem, runtime.ExtrinsicFailed{
			Error:  fault.DiscriminantOf(result),
			Weight: info.Weight,
		})
	}

	logger.PanicIfError("extrinsic commit", ctx.Tx.Commit())
	return nil
}

func (ex *Executive) notify(header blockrecord.Header, records []runtime.EventRecord) {
	for _, l := range ex.listeners {
		l.BlockImported(header, records)
	}
}
