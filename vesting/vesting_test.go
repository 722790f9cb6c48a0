// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/vesting"
)

func setup(t *testing.T) *runtime.Context {
	d := runtime.NewDispatcher()
	fungible.Register(d)
	vesting.Register(d)
	ctx := fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)
	fungible.EnsureNative(ctx)
	require.Nil(t, fungible.Mint(ctx, fungible.Native, fixtures.Alice.Account(), 10000), "mint")
	return ctx
}

func plan() vesting.Plan {
	return vesting.Plan{
		Start:         100,
		Cliff:         20,
		TotalDuration: 100,
		Interval:      10,
		InitialAmount: 100,
		TotalAmount:   1100,
	}
}

func TestLocked(t *testing.T) {
	p := plan()
	assert.Equal(t, uint64(100), p.PerInterval(), "per interval")

	items := []struct {
		t      uint64
		locked uint64
	}{
		{0, 1100},
		{99, 1100},
		{100, 1000},
		{119, 1000},
		{120, 800},
		{150, 500},
		{199, 100},
		{200, 0},
		{1000, 0},
	}
	for i, item := range items {
		assert.Equal(t, item.locked, p.Locked(item.t), "%d: locked at %d", i, item.t)
	}

	p.VestingDuringCliff = true
	assert.Equal(t, uint64(900), p.Locked(110), "accrues during cliff")
	assert.Equal(t, uint64(1000), p.Locked(109), "first interval")
}

func TestUnlockedIsMonotonic(t *testing.T) {
	plans := []vesting.Plan{
		plan(),
		{Start: 5, Cliff: 0, TotalDuration: 7, Interval: 7, InitialAmount: 0, TotalAmount: 100},
		{Start: 0, Cliff: 30, TotalDuration: 30, Interval: 3, InitialAmount: 33, TotalAmount: 1000, VestingDuringCliff: true},
		{Start: 50, Cliff: 10, TotalDuration: 90, Interval: 9, InitialAmount: 1, TotalAmount: 997},
	}
	for i, p := range plans {
		require.Nil(t, p.Validate(100), "%d: valid", i)
		previous := uint64(0)
		for now := uint64(0); now < p.Start+p.TotalDuration+20; now += 1 {
			unlocked := p.Unlocked(now)
			assert.True(t, unlocked >= previous, "%d: non decreasing at %d", i, now)
			previous = unlocked

			switch {
			case now >= p.Start+p.TotalDuration:
				assert.Equal(t, p.TotalAmount, unlocked, "%d: complete at %d", i, now)
			case now >= p.Start && now < p.Start+p.Cliff && !p.VestingDuringCliff:
				assert.Equal(t, p.InitialAmount, unlocked, "%d: initial during cliff at %d", i, now)
			case now < p.Start:
				assert.Equal(t, uint64(0), unlocked, "%d: nothing before start at %d", i, now)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	assert.Nil(t, plan().Validate(100), "valid")
	assert.Equal(t, vesting.ErrAmountLow, plan().Validate(2000), "below minimum")

	bad := []func(p *vesting.Plan){
		func(p *vesting.Plan) { p.TotalDuration = 0 },
		func(p *vesting.Plan) { p.Interval = 0 },
		func(p *vesting.Plan) { p.Cliff = 101 },
		func(p *vesting.Plan) { p.Interval = 30 },
		func(p *vesting.Plan) { p.InitialAmount = 1101 },
		func(p *vesting.Plan) { p.Start = 0xffffffffffffffff },
	}
	for i, change := range bad {
		p := plan()
		change(&p)
		assert.Equal(t, vesting.ErrInvalidVestingPlan, p.Validate(100), "%d: invalid", i)
	}
}

func TestAddPlanAndUnlock(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	require.Nil(t, vesting.AddPlan(ctx, alice, plan()), "add")
	assert.Equal(t, uint64(9000), fungible.Usable(ctx.Tx, ctx.DB, fungible.Native, alice), "locked at start")

	err := fungible.Transfer(ctx, fungible.Native, alice, bob, 9001)
	assert.Equal(t, fungible.ErrLiquidityRestricted, err, "lock holds")

	assert.Equal(t, vesting.ErrExistingVestingPlan, vesting.AddPlan(ctx, alice, plan()), "one plan")

	ctx.Timestamp = 150
	require.Nil(t, vesting.Unlock(ctx, alice), "unlock")
	assert.Equal(t, uint64(9500), fungible.Usable(ctx.Tx, ctx.DB, fungible.Native, alice), "half released")

	ctx.Timestamp = 200
	require.Nil(t, vesting.Unlock(ctx, alice), "unlock all")
	_, found := vesting.Get(ctx.Tx, ctx.DB, alice)
	assert.False(t, found, "plan removed")
	_, locked := fungible.LockOf(ctx.Tx, ctx.DB, fungible.Native, vesting.LockId, alice)
	assert.False(t, locked, "lock removed")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleVesting, "VestingCompleted")), "completed")

	assert.Equal(t, vesting.ErrNoVestingPlan, vesting.Unlock(ctx, alice), "nothing to unlock")

	low := plan()
	low.TotalAmount = 50
	low.InitialAmount = 0
	assert.Equal(t, vesting.ErrAmountLow, vesting.AddPlan(ctx, alice, low), "too small")
	assert.Equal(t, fungible.ErrInsufficientBalance, vesting.AddPlan(ctx, bob, plan()), "nothing to lock")
}

func TestVestedTransfer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	call := runtime.NewCall(constants.ModuleVesting, vesting.FnVestedTransfer, vesting.PlanArgs{Account: bob, Plan: plan()})
	require.Nil(t, ctx.Dispatch(fixtures.Signed(fixtures.Alice), call), "vested transfer")
	assert.Equal(t, uint64(8900), fungible.Balance(ctx.Tx, ctx.DB, fungible.Native, alice), "paid")
	assert.Equal(t, uint64(1100), fungible.Balance(ctx.Tx, ctx.DB, fungible.Native, bob), "received")
	assert.Equal(t, uint64(100), fungible.Usable(ctx.Tx, ctx.DB, fungible.Native, bob), "only the initial amount")

	err := ctx.Dispatch(fixtures.Signed(fixtures.Alice), call)
	assert.Equal(t, vesting.ErrExistingVestingPlan, err, "receiver already vesting")
	assert.Equal(t, uint64(8900), fungible.Balance(ctx.Tx, ctx.DB, fungible.Native, alice), "nothing paid twice")

	ctx.Timestamp = 160
	unlock := runtime.NewCall(constants.ModuleVesting, vesting.FnUnlock, vesting.UnlockArgs{Account: bob})
	require.Nil(t, ctx.Dispatch(fixtures.Signed(fixtures.Carol), unlock), "anyone may unlock")
	assert.Equal(t, uint64(700), fungible.Usable(ctx.Tx, ctx.DB, fungible.Native, bob), "six intervals")

	add := runtime.NewCall(constants.ModuleVesting, vesting.FnAddVestingPlan, vesting.PlanArgs{Account: alice, Plan: plan()})
	assert.Equal(t, fault.BadOrigin, ctx.Dispatch(fixtures.Signed(fixtures.Bob), add), "not for others")
	assert.Nil(t, ctx.Dispatch(fixtures.Signed(fixtures.Alice), add), "for itself")
}
