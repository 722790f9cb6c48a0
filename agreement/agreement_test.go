// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package agreement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/agreement"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/runtime"
)

var terms = runtime.HashOf([]byte("licence terms v1"))

func setup(t *testing.T) *runtime.Context {
	d := runtime.NewDispatcher()
	agreement.Register(d)
	return fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)
}

func parties(kps ...account.KeyPair) []account.AccountId {
	result := make([]account.AccountId, len(kps))
	for i, kp := range kps {
		result[i] = kp.Account()
	}
	return result
}

func create(ctx *runtime.Context, kp account.KeyPair, p []account.AccountId) error {
	return ctx.Dispatch(fixtures.Signed(kp), runtime.NewCall(constants.ModuleAgreement, agreement.FnCreate, agreement.CreateArgs{
		Parties: p,
		Terms:   terms,
	}))
}

func sign(ctx *runtime.Context, kp account.KeyPair, id uint64) error {
	return ctx.Dispatch(fixtures.Signed(kp), runtime.NewCall(constants.ModuleAgreement, agreement.FnSign, agreement.IdArgs{Id: id}))
}

func cancel(ctx *runtime.Context, kp account.KeyPair, id uint64) error {
	return ctx.Dispatch(fixtures.Signed(kp), runtime.NewCall(constants.ModuleAgreement, agreement.FnCancel, agreement.IdArgs{Id: id}))
}

func TestCreateValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)

	assert.Equal(t, agreement.ErrTooFewParties, create(ctx, fixtures.Alice, parties(fixtures.Alice)), "one party")
	assert.Equal(t, agreement.ErrDuplicateParty, create(ctx, fixtures.Alice, parties(fixtures.Alice, fixtures.Alice)), "duplicate")
	assert.Equal(t, agreement.ErrNotParty, create(ctx, fixtures.Alice, parties(fixtures.Bob, fixtures.Carol)), "outsider")

	ctx.Parameters.MaxSignatories = 2
	assert.Equal(t, agreement.ErrTooManyParties, create(ctx, fixtures.Alice, parties(fixtures.Alice, fixtures.Bob, fixtures.Carol)), "too many")

	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementCreated")), "nothing created")
}

func TestConcluded(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	require.Nil(t, create(ctx, fixtures.Alice, parties(fixtures.Alice, fixtures.Bob, fixtures.Carol)), "create")

	created := ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementCreated")
	require.Equal(t, 1, len(created), "created event")
	id := created[0].Event.(agreement.ContractAgreementCreated).Id

	a, err := agreement.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "get")
	assert.Equal(t, []bool{true, false, false}, a.Signed, "creator signed")
	assert.Equal(t, agreement.Open, a.State, "open")
	assert.Equal(t, terms, a.Terms, "terms hash")

	assert.Equal(t, agreement.ErrPartySigned, sign(ctx, fixtures.Alice, id), "creator again")
	assert.Equal(t, agreement.ErrNotParty, sign(ctx, fixtures.Dave, id), "outsider")
	assert.Equal(t, agreement.ErrUnknownAgreement, sign(ctx, fixtures.Bob, id+1), "unknown")

	require.Nil(t, sign(ctx, fixtures.Bob, id), "bob")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementConcluded")), "not yet")
	require.Nil(t, sign(ctx, fixtures.Carol, id), "carol")

	concluded := ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementConcluded")
	require.Equal(t, 1, len(concluded), "concluded")
	assert.Equal(t, 2, len(ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementSigned")), "signed events")

	a, err = agreement.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "get")
	assert.Equal(t, agreement.Concluded, a.State, "concluded state")
	assert.Equal(t, agreement.ErrNotOpen, cancel(ctx, fixtures.Bob, id), "cancel after conclusion")

	b := agreement.Agreement{}
	require.Nil(t, codec.Unmarshal(codec.Marshal(a), &b), "decode")
	assert.Equal(t, a, b, "stored form")
}

func TestCancel(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	a, err := agreement.Create(ctx, fixtures.Alice.Account(), parties(fixtures.Alice, fixtures.Bob), terms)
	require.Nil(t, err, "create")

	assert.Equal(t, agreement.ErrNotParty, cancel(ctx, fixtures.Carol, a.Id), "outsider")
	require.Nil(t, cancel(ctx, fixtures.Bob, a.Id), "bob cancels")
	assert.Equal(t, agreement.ErrNotOpen, sign(ctx, fixtures.Bob, a.Id), "sign cancelled")
	assert.Equal(t, agreement.ErrNotOpen, cancel(ctx, fixtures.Alice, a.Id), "cancel twice")

	stored, err := agreement.Get(ctx.Tx, ctx.DB, a.Id)
	require.Nil(t, err, "get")
	assert.Equal(t, agreement.Cancelled, stored.State, "cancelled")
	assert.Equal(t, "cancelled", stored.State.String(), "state name")

	events := ctx.Events.Find(constants.ModuleAgreement, "ContractAgreementCancelled")
	require.Equal(t, 1, len(events), "cancelled event")
	assert.Equal(t, fixtures.Bob.Account(), events[0].Event.(agreement.ContractAgreementCancelled).By, "by bob")
}
