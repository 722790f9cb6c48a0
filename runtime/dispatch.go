// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// Handler - execute a call, any error rolls back everything it did
type Handler func(ctx *Context, args []byte) error

// Validity - how an unsigned extrinsic sits in the pool
type Validity struct {
	Priority  uint64
	Provides  []byte // deduplication tag
	Longevity uint64 // blocks
}

// UnsignedValidator - admit an unsigned extrinsic
//
// must only read state, it runs before dispatch and again in the pool
type UnsignedValidator func(ctx *Context, args []byte) (Validity, error)

// Function - a dispatchable entry point of a module
type Function struct {
	Name     string
	Weight   uint64
	Handler  Handler
	Unsigned UnsignedValidator // nil if only signed extrinsics may call it
}

// Hooks - per block entry points of a module
type Hooks interface {
	OnInitialize(ctx *Context) error
	OnFinalize(ctx *Context) error
}

type key struct {
	module   uint8
	function uint8
}

// Dispatcher - the routing table from calls to handlers
type Dispatcher struct {
	sync.RWMutex
	log       *logger.L
	functions map[key]Function
	modules   map[uint8]string
	hooks     []Hooks
}

// NewDispatcher - create an empty routing table
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		log:       logger.New("dispatch"),
		functions: make(map[key]Function),
		modules:   make(map[uint8]string),
	}
}

// Register - add a function, panics on duplicates since the table is
// fixed at start up
func (d *Dispatcher) Register(module uint8, moduleName string, function uint8, f Function) {
	d.Lock()
	defer d.Unlock()

	k := key{module, function}
	if _, ok := d.functions[k]; ok {
		logger.Panicf("dispatch: duplicate function: %s.%s", moduleName, f.Name)
	}
	if name, ok := d.modules[module]; ok && name != moduleName {
		logger.Panicf("dispatch: module: %d is both %s and %s", module, name, moduleName)
	}
	d.modules[module] = moduleName
	d.functions[k] = f
}

// AddHooks - register per block hooks, run in registration order
func (d *Dispatcher) AddHooks(h Hooks) {
	d.Lock()
	defer d.Unlock()
	d.hooks = append(d.hooks, h)
}

// Lookup - find the function of a call
func (d *Dispatcher) Lookup(call Call) (Function, error) {
	d.RLock()
	defer d.RUnlock()
	f, ok := d.functions[key{call.Module, call.Function}]
	if !ok {
		return Function{}, fault.CallNotFound
	}
	return f, nil
}

// Name - module.function for logging
func (d *Dispatcher) Name(call Call) string {
	d.RLock()
	defer d.RUnlock()
	f, ok := d.functions[key{call.Module, call.Function}]
	if !ok {
		return fmt.Sprintf("%d.%d", call.Module, call.Function)
	}
	return d.modules[call.Module] + "." + f.Name
}

// Weight - declared weight of a call
func (d *Dispatcher) Weight(call Call) (uint64, error) {
	f, err := d.Lookup(call)
	if nil != err {
		return 0, err
	}
	return f.Weight, nil
}

// Dispatch - run a call inside its own savepoint
//
// on error both the storage writes and the events of the call are
// discarded, so a failed call leaves no trace
func (d *Dispatcher) Dispatch(ctx *Context, call Call) error {
	f, err := d.Lookup(call)
	if nil != err {
		return err
	}

	ctx.Tx.Begin()
	mark := ctx.Events.Mark()

	err = f.Handler(ctx, call.Args)
	if nil != err {
		d.log.Debugf("%s by: %s failed: %s", d.Name(call), ctx.Origin, err)
		logger.PanicIfError("dispatch abort", ctx.Tx.Abort())
		ctx.Events.Truncate(mark)
		return err
	}

	logger.PanicIfError("dispatch commit", ctx.Tx.Commit())
	return nil
}

// ValidateUnsigned - run the unsigned validator of a call
func (d *Dispatcher) ValidateUnsigned(ctx *Context, call Call) (Validity, error) {
	f, err := d.Lookup(call)
	if nil != err {
		return Validity{}, err
	}
	if nil == f.Unsigned {
		return Validity{}, fault.UnsignedNotAllowed
	}
	return f.Unsigned(ctx, call.Args)
}

// OnInitialize - run all initialize hooks in a savepoint each
func (d *Dispatcher) OnInitialize(ctx *Context) error {
	return d.runHooks(ctx, func(h Hooks, c *Context) error { return h.OnInitialize(c) })
}

// OnFinalize - run all finalize hooks in a savepoint each
func (d *Dispatcher) OnFinalize(ctx *Context) error {
	return d.runHooks(ctx, func(h Hooks, c *Context) error { return h.OnFinalize(c) })
}

func (d *Dispatcher) runHooks(ctx *Context, run func(Hooks, *Context) error) error {
	d.RLock()
	hooks := d.hooks
	d.RUnlock()

	for _, h := range hooks {
		ctx.Tx.Begin()
		mark := ctx.Events.Mark()
		err := run(h, ctx)
		if nil != err {
			logger.PanicIfError("hook abort", ctx.Tx.Abort())
			ctx.Events.Truncate(mark)
			return err
		}
		logger.PanicIfError("hook commit", ctx.Tx.Commit())
	}
	return nil
}

// SignedArgs - the signer of a call and its decoded arguments
func SignedArgs(ctx *Context, args []byte, v codec.Decodable) (account.AccountId, error) {
	sender, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return sender, err
	}
	return sender, codec.Unmarshal(args, v)
}
