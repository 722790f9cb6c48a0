// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// LockId - the lock on the native balance of a vesting account
var LockId = fungible.LockId{'v', 'e', 's', 't', 'i', 'n', 'g', ' '}

// Get - the plan of an account
func Get(tx storage.Transaction, db *storage.Database, who account.AccountId) (Plan, bool) {
	p := Plan{}
	buffer := tx.Get(db.VestingPlans, who[:])
	if nil == buffer {
		return p, false
	}
	err := codec.Unmarshal(buffer, &p)
	if nil != err {
		logger.Panicf("vesting: plan: %s is corrupt: %s", who, err)
	}
	return p, true
}

// AddPlan - lock the total of a plan on the native balance
func AddPlan(ctx *runtime.Context, who account.AccountId, p Plan) error {
	if ctx.Tx.Has(ctx.DB.VestingPlans, who[:]) {
		return ErrExistingVestingPlan
	}
	err := p.Validate(ctx.Parameters.MinVestedTransfer)
	if nil != err {
		return err
	}
	if fungible.Balance(ctx.Tx, ctx.DB, fungible.Native, who) < p.TotalAmount {
		return fungible.ErrInsufficientBalance
	}

	ctx.Tx.Put(ctx.DB.VestingPlans, who[:], codec.Marshal(p))
	ctx.Deposit(constants.ModuleVesting, VestingPlanAdded{
		Account: who,
		Plan:    p,
	})
	return update(ctx, who, p)
}

// VestedTransfer - pay the total of a plan then lock it on the receiver
func VestedTransfer(ctx *runtime.Context, from account.AccountId, to account.AccountId, p Plan) error {
	if ctx.Tx.Has(ctx.DB.VestingPlans, to[:]) {
		return ErrExistingVestingPlan
	}
	err := p.Validate(ctx.Parameters.MinVestedTransfer)
	if nil != err {
		return err
	}
	err = fungible.Transfer(ctx, fungible.Native, from, to, p.TotalAmount)
	if nil != err {
		return err
	}
	return AddPlan(ctx, to, p)
}

// Unlock - bring the lock in line with the block time
func Unlock(ctx *runtime.Context, who account.AccountId) error {
	p, ok := Get(ctx.Tx, ctx.DB, who)
	if !ok {
		return ErrNoVestingPlan
	}
	return update(ctx, who, p)
}

// set the lock to the locked amount now, drop the plan once nothing is
// locked
func update(ctx *runtime.Context, who account.AccountId, p Plan) error {
	locked := p.Locked(ctx.Timestamp)
	if 0 == locked {
		fungible.RemoveLock(ctx, fungible.Native, LockId, who)
		ctx.Tx.Delete(ctx.DB.VestingPlans, who[:])
		ctx.Deposit(constants.ModuleVesting, VestingCompleted{Account: who})
		return nil
	}
	fungible.SetLock(ctx, fungible.Native, LockId, who, locked)
	ctx.Deposit(constants.ModuleVesting, VestingUpdated{
		Account:  who,
		Unvested: locked,
	})
	return nil
}
