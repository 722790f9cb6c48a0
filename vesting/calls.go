// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// vesting functions
const (
	FnAddVestingPlan = 0
	FnVestedTransfer = 1
	FnUnlock         = 2
)

const moduleName = "vesting"

// PlanArgs - an account and a plan
type PlanArgs struct {
	Account account.AccountId
	Plan    Plan
}

func (a PlanArgs) Encode(e *codec.Encoder) {
	a.Account.Encode(e)
	a.Plan.Encode(e)
}

func (a *PlanArgs) Decode(d *codec.Decoder) {
	a.Account.Decode(d)
	a.Plan.Decode(d)
}

// UnlockArgs - the account to update
type UnlockArgs struct {
	Account account.AccountId
}

func (a UnlockArgs) Encode(e *codec.Encoder) {
	a.Account.Encode(e)
}

func (a *UnlockArgs) Decode(d *codec.Decoder) {
	a.Account.Decode(d)
}

// Register - add the vesting calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleVesting, moduleName, FnAddVestingPlan, runtime.Function{
		Name:    "add_vesting_plan",
		Weight:  20000,
		Handler: addVestingPlan,
	})
	d.Register(constants.ModuleVesting, moduleName, FnVestedTransfer, runtime.Function{
		Name:    "vested_transfer",
		Weight:  30000,
		Handler: vestedTransfer,
	})
	d.Register(constants.ModuleVesting, moduleName, FnUnlock, runtime.Function{
		Name:    "unlock",
		Weight:  10000,
		Handler: unlock,
	})
}

// root or the account itself may lock its balance
func addVestingPlan(ctx *runtime.Context, args []byte) error {
	a := PlanArgs{}
	err := codec.Unmarshal(args, &a)
	if nil != err {
		return err
	}
	if nil != ctx.Origin.EnsureRoot() && nil != ctx.Origin.EnsureSignedBy(a.Account) {
		return fault.BadOrigin
	}
	return AddPlan(ctx, a.Account, a.Plan)
}

func vestedTransfer(ctx *runtime.Context, args []byte) error {
	a := PlanArgs{}
	from, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return VestedTransfer(ctx, from, a.Account, a.Plan)
}

// anyone may bring an account up to date
func unlock(ctx *runtime.Context, args []byte) error {
	a := UnlockArgs{}
	_, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	return Unlock(ctx, a.Account)
}
