// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fnft"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
)

var unique = fnft.Unique{Claim: []byte{0x11, 0x11, 0x11, 0x11}}

func setup(t *testing.T) *runtime.Context {
	d := runtime.NewDispatcher()
	fungible.Register(d)
	fnft.Register(d)
	ctx := fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)
	fungible.EnsureNative(ctx)
	return ctx
}

// collection C0 with one item fractionalized into 100 and 30 sent to bob
func scenario(t *testing.T, ctx *runtime.Context) (fnft.Fingerprint, fungible.AssetId) {
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	c, err := fnft.CreateCollection(ctx, alice, 10)
	require.Nil(t, err, "create collection")
	assert.Equal(t, fnft.CollectionId(0), c, "first collection")

	fp, err := fnft.MintItem(ctx, c, alice, unique)
	require.Nil(t, err, "mint item")
	assert.Equal(t, unique.Fingerprint(), fp, "fingerprint")

	f0, err := fnft.Fractionalize(ctx, fp, alice, 100, false)
	require.Nil(t, err, "fractionalize")

	err = fnft.TransferFraction(ctx, fp, alice, bob, 30)
	require.Nil(t, err, "transfer fraction")
	return fp, f0
}

func sumOfFractions(ctx *runtime.Context, fp fnft.Fingerprint) uint64 {
	sum := uint64(0)
	for _, f := range fnft.FractionsOf(ctx.Tx, ctx.DB, fp) {
		sum += f.Amount
	}
	return sum
}

func TestMintFractionalizeTransfer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	fp, f0 := scenario(t, ctx)

	assert.Equal(t, uint64(70), fungible.Balance(ctx.Tx, ctx.DB, f0, alice), "alice side token")
	assert.Equal(t, uint64(30), fungible.Balance(ctx.Tx, ctx.DB, f0, bob), "bob side token")

	item, err := fnft.GetItem(ctx.Tx, ctx.DB, fp)
	require.Nil(t, err, "item")
	assert.Equal(t, &fnft.Fractional{Asset: f0, Total: 100}, item.Fractional, "fractional")

	a, _ := fnft.GetFraction(ctx.Tx, ctx.DB, fp, alice)
	b, _ := fnft.GetFraction(ctx.Tx, ctx.DB, fp, bob)
	assert.Equal(t, uint64(70), a.Amount, "alice fraction")
	assert.Equal(t, uint64(30), b.Amount, "bob fraction")
	assert.Equal(t, uint64(100), sumOfFractions(ctx, fp), "sum equals total")

	total, ok := fnft.TotalFraction(ctx.Tx, ctx.DB, fp)
	assert.True(t, ok, "total present")
	assert.Equal(t, uint64(100), total, "total")

	err = fnft.TransferItem(ctx, fp, alice, bob)
	assert.Equal(t, fnft.ErrNoPermission, err, "fractional item cannot move whole")
}

func TestTransferFractionErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()
	carol := fixtures.Carol.Account()

	fp, _ := scenario(t, ctx)

	assert.Equal(t, fnft.ErrInsufficientBalance, fnft.TransferFraction(ctx, fp, carol, bob, 1), "absent")
	assert.Equal(t, fnft.ErrInsufficientBalance, fnft.TransferFraction(ctx, fp, bob, carol, 31), "too much")
	assert.Equal(t, fnft.ErrBadValue, fnft.TransferFraction(ctx, fp, bob, carol, 0), "zero")
	assert.Equal(t, fnft.ErrBadTarget, fnft.TransferFraction(ctx, fp, alice, alice, 1), "self")

	// residual zero removes the record
	assert.Nil(t, fnft.TransferFractionFull(ctx, fp, bob, carol), "full")
	_, found := fnft.GetFraction(ctx.Tx, ctx.DB, fp, bob)
	assert.False(t, found, "bob record removed")
	assert.Equal(t, uint64(100), sumOfFractions(ctx, fp), "sum equals total")
}

func TestHoldBlocksTransfer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()
	h1 := fnft.HolderId{'H', '1'}

	fp, _ := scenario(t, ctx)

	assert.Nil(t, fnft.HoldFraction(ctx, alice, fp, h1, 1), "hold")
	assert.Nil(t, fnft.HoldFraction(ctx, alice, fp, h1, 1), "hold again")
	f, _ := fnft.GetFraction(ctx.Tx, ctx.DB, fp, alice)
	assert.Equal(t, 1, len(f.Holds), "idempotent hold")

	assert.Equal(t, fnft.ErrNoPermission, fnft.TransferFraction(ctx, fp, alice, bob, 10), "held")
	assert.Equal(t, fnft.ErrNoPermission, fnft.TransferFractionFull(ctx, fp, alice, bob), "held full")

	assert.Nil(t, fnft.UnholdFraction(ctx, alice, fp, h1, 1), "unhold")
	assert.Nil(t, fnft.UnholdFraction(ctx, alice, fp, h1, 1), "unhold again")
	assert.Nil(t, fnft.TransferFraction(ctx, fp, alice, bob, 10), "released")

	b, _ := fnft.GetFraction(ctx.Tx, ctx.DB, fp, bob)
	assert.Equal(t, uint64(40), b.Amount, "bob fraction")
}

func TestFractionalizeFuseRoundTrip(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	c, _ := fnft.CreateCollection(ctx, alice, 10)
	fp, _ := fnft.MintItem(ctx, c, alice, unique)
	before := ctx.Tx.Get(ctx.DB.Items, fp[:])

	assert.Equal(t, fnft.ErrBadValue, errOf(fnft.Fractionalize(ctx, fp, alice, 0, false)), "zero total")
	assert.Equal(t, fnft.ErrWrongOwner, errOf(fnft.Fractionalize(ctx, fp, bob, 10, false)), "not owner")

	f0, err := fnft.Fractionalize(ctx, fp, alice, 100, false)
	require.Nil(t, err, "fractionalize")
	assert.Equal(t, fnft.ErrAlreadyFractionalized, errOf(fnft.Fractionalize(ctx, fp, alice, 10, false)), "twice")

	assert.Nil(t, fnft.TransferFraction(ctx, fp, alice, bob, 30), "send")
	assert.Equal(t, fnft.ErrInsufficientBalance, fnft.Fuse(ctx, fp, alice), "partial owner")
	assert.Nil(t, fnft.TransferFraction(ctx, fp, bob, alice, 30), "return")

	assert.Nil(t, fnft.Fuse(ctx, fp, alice), "fuse")
	assert.Equal(t, before, ctx.Tx.Get(ctx.DB.Items, fp[:]), "item restored bit for bit")

	_, err = fungible.Get(ctx.Tx, ctx.DB, f0)
	assert.Equal(t, fungible.ErrUnknownAsset, err, "side token destroyed")
	assert.Equal(t, 0, len(fnft.FractionsOf(ctx.Tx, ctx.DB, fp)), "no fractions")
}

func TestCollectionBounds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()

	_, err := fnft.CreateCollection(ctx, alice, 0)
	assert.Equal(t, fnft.ErrBadValue, err, "zero max items")

	c1, _ := fnft.CreateCollection(ctx, alice, 2)
	c2, _ := fnft.CreateCollection(ctx, alice, 2)

	_, err = fnft.MintItem(ctx, c1, alice, fnft.Unique{Claim: []byte("one")})
	assert.Nil(t, err, "first")
	_, err = fnft.MintItem(ctx, c2, alice, fnft.Unique{Claim: []byte("one")})
	assert.Equal(t, fnft.ErrItemExists, err, "fingerprint unique across collections")
	_, err = fnft.MintItem(ctx, c1, alice, fnft.Unique{Claim: []byte("two")})
	assert.Nil(t, err, "second")
	_, err = fnft.MintItem(ctx, c1, alice, fnft.Unique{Claim: []byte("three")})
	assert.Equal(t, fnft.ErrCollectionFull, err, "full")

	items, err := fnft.ItemsOf(ctx.Tx, ctx.DB, c1)
	assert.Nil(t, err, "items")
	assert.Equal(t, 2, len(items), "count")

	// burning frees a slot
	assert.Nil(t, fnft.BurnItem(ctx, items[0], alice), "burn")
	_, err = fnft.MintItem(ctx, c1, alice, fnft.Unique{Claim: []byte("three")})
	assert.Nil(t, err, "slot reused")

	_, err = fnft.MintItem(ctx, 99, alice, fnft.Unique{Claim: []byte("four")})
	assert.Equal(t, fnft.ErrUnknownCollection, err, "unknown collection")
}

func TestMintAndBurnFraction(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	fp, f0 := scenario(t, ctx)

	assert.Nil(t, fnft.MintFraction(ctx, fp, bob, 50), "mint fraction")
	total, _ := fnft.TotalFraction(ctx.Tx, ctx.DB, fp)
	assert.Equal(t, uint64(150), total, "total grew")
	assert.Equal(t, uint64(150), sumOfFractions(ctx, fp), "sum equals total")

	assert.Nil(t, fnft.BurnFraction(ctx, fp, bob, 80), "burn fraction")
	total, _ = fnft.TotalFraction(ctx.Tx, ctx.DB, fp)
	assert.Equal(t, uint64(70), total, "total shrank")
	assert.Equal(t, uint64(70), sumOfFractions(ctx, fp), "sum equals total")

	supply, _ := fungible.TotalIssuance(ctx.Tx, ctx.DB, f0)
	assert.Equal(t, uint64(70), supply, "side token supply")

	assert.Equal(t, fnft.ErrBadValue, fnft.BurnFraction(ctx, fp, alice, 70), "cannot burn to zero")
}

func TestLimitedFraction(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()

	c, _ := fnft.CreateCollection(ctx, alice, 1)
	fp, _ := fnft.MintItem(ctx, c, alice, unique)
	_, err := fnft.Fractionalize(ctx, fp, alice, 10, true)
	require.Nil(t, err, "fractionalize limited")

	assert.Equal(t, fnft.ErrNoPermission, fnft.MintFraction(ctx, fp, alice, 1), "limited mint")
	assert.Equal(t, fnft.ErrNoPermission, fnft.BurnFraction(ctx, fp, alice, 1), "limited burn")
}

func TestQueries(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	fp, _ := scenario(t, ctx)
	item, _ := fnft.GetItem(ctx.Tx, ctx.DB, fp)
	c, _ := fnft.GetCollection(ctx.Tx, ctx.DB, item.Collection)

	owner, err := fnft.OwnerOf(ctx.Tx, ctx.DB, c.Class, item.Instance)
	assert.Nil(t, err, "owner")
	assert.Equal(t, alice, owner, "owner of record")

	n, err := fnft.BalanceOf(ctx.Tx, ctx.DB, c.Class, item.Instance, bob)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(30), n, "bob balance")

	n, err = fnft.TotalIssuanceOf(ctx.Tx, ctx.DB, c.Class, item.Instance)
	assert.Nil(t, err, "issuance")
	assert.Equal(t, uint64(100), n, "issuance")
}

func TestCalls(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	bob := fixtures.Bob.Account()
	alice := fixtures.Signed(fixtures.Alice)

	call := func(fn uint8, args codec.Encodable) runtime.Call {
		return runtime.NewCall(constants.ModuleFnft, fn, args)
	}

	assert.Nil(t, ctx.Dispatch(alice, call(fnft.FnCreateCollection, fnft.CreateCollectionArgs{MaxItems: 10})), "create")
	mint := call(fnft.FnMintItem, fnft.MintItemArgs{Collection: 0, Owner: fixtures.Alice.Account(), Unique: unique})
	assert.Equal(t, fnft.ErrWrongOwner, ctx.Dispatch(fixtures.Signed(fixtures.Bob), mint), "mint by stranger")
	assert.Nil(t, ctx.Dispatch(alice, mint), "mint")

	fp := unique.Fingerprint()
	assert.Nil(t, ctx.Dispatch(alice, call(fnft.FnFractionalize, fnft.FractionalizeArgs{Fingerprint: fp, Total: 100})), "fractionalize")
	assert.Nil(t, ctx.Dispatch(alice, call(fnft.FnTransferFraction, fnft.AmountArgs{Fingerprint: fp, To: bob, Amount: 30})), "transfer")

	// a managed side token cannot move through the public transfer
	item, _ := fnft.GetItem(ctx.Tx, ctx.DB, fp)
	transfer := runtime.NewCall(constants.ModuleFungible, fungible.FnTransfer, fungible.TransferArgs{Asset: item.Fractional.Asset, To: bob, Amount: 1})
	assert.Equal(t, fungible.ErrAssetIsManaged, ctx.Dispatch(alice, transfer), "bypass")

	err := ctx.Dispatch(runtime.None(), call(fnft.FnFuse, fnft.ItemArgs{Fingerprint: fp}))
	assert.NotNil(t, err, "unsigned")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleFnft, "Fractionalized")), "event")
}

func errOf(_ fungible.AssetId, err error) error {
	return err
}
