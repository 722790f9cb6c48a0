// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/proposal"
	"github.com/bitmark-inc/ipchaind/runtime"
)

const remarkWeight = 1000

func setup(t *testing.T) (*runtime.Context, dao.Dao) {
	d := runtime.NewDispatcher()
	runtime.RegisterSystem(d)
	dao.Register(d)
	proposal.Register(d, dao.Registry{})
	ctx := fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)

	id, _ := dao.IdFromString("acme")
	authority := dao.Authority{
		Signatories: []account.AccountId{
			fixtures.Alice.Account(),
			fixtures.Bob.Account(),
			fixtures.Carol.Account(),
		},
		Threshold: 2,
	}
	acme, err := dao.Create(ctx, fixtures.Alice.Account(), id, authority, nil)
	require.Nil(t, err, "create dao")
	return ctx, acme
}

func remark(text string) runtime.Call {
	return runtime.NewCall(constants.ModuleSystem, runtime.FnRemark, runtime.Remark{Data: []byte(text)})
}

// propose as alice and return the new id
func propose(t *testing.T, ctx *runtime.Context, batch []proposal.Item) proposal.ProposalId {
	before := len(ctx.Events.Find(constants.ModuleProposal, "Proposed"))
	err := ctx.Dispatch(fixtures.Signed(fixtures.Alice), proposal.ProposeCall(batch, nil))
	require.Nil(t, err, "propose")
	events := ctx.Events.Find(constants.ModuleProposal, "Proposed")
	require.Equal(t, before+1, len(events), "proposed event")
	return events[before].Event.(proposal.Proposed).Id
}

func decide(ctx *runtime.Context, kp account.KeyPair, id proposal.ProposalId, decision proposal.Decision, hint uint64) error {
	return ctx.Dispatch(fixtures.Signed(kp), proposal.DecideCall(id, decision, hint))
}

func resolved(t *testing.T, ctx *runtime.Context) proposal.Resolved {
	events := ctx.Events.Find(constants.ModuleProposal, "Resolved")
	require.Equal(t, 1, len(events), "resolved once")
	return events[0].Event.(proposal.Resolved)
}

func TestApprovedByDao(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, acme := setup(t)
	id := propose(t, ctx, []proposal.Item{{Signer: acme.DaoKey, Call: remark("hello")}})
	assert.Equal(t, proposal.Timepoint(1, 0, 0), id, "timepoint id")

	p, err := proposal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "stored")
	assert.Equal(t, proposal.StatePending, p.State, "pending")
	assert.Equal(t, 1, len(p.Decisions), "one signer")

	err = decide(ctx, fixtures.Alice, id, proposal.Approve, remarkWeight)
	require.Nil(t, err, "alice approves")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleProposal, "Approved")), "approved event")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "not yet dispatched")

	p, err = proposal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "still stored")
	assert.Equal(t, proposal.Pending, p.Decisions[0].Decision, "one vote of two")

	err = decide(ctx, fixtures.Bob, id, proposal.Approve, remarkWeight)
	require.Nil(t, err, "bob approves")

	remarks := ctx.Events.Find(constants.ModuleSystem, "Remarked")
	require.Equal(t, 1, len(remarks), "dispatched once")
	assert.Equal(t, acme.DaoKey, remarks[0].Event.(runtime.Remarked).Sender, "as the dao key")

	r := resolved(t, ctx)
	assert.Equal(t, proposal.StateDone, r.State, "done")
	assert.Nil(t, r.Error, "no error")

	_, err = proposal.Get(ctx.Tx, ctx.DB, id)
	assert.Equal(t, proposal.ErrNotFound, err, "deleted")

	err = decide(ctx, fixtures.Carol, id, proposal.Approve, remarkWeight)
	assert.Equal(t, proposal.ErrNotFound, err, "late decide")
}

func TestOnBehalfByThreshold(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, acme := setup(t)
	call := runtime.NewCall(constants.ModuleDao, dao.FnOnBehalf, dao.OnBehalfArgs{Id: acme.Id, Call: remark("on behalf")})
	id := propose(t, ctx, []proposal.Item{{Signer: acme.AuthorityKey, Call: call}})

	err := decide(ctx, fixtures.Alice, id, proposal.Approve, 1<<20)
	require.Nil(t, err, "alice approves")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "one vote of two")

	err = decide(ctx, fixtures.Dave, id, proposal.Approve, 1<<20)
	assert.Equal(t, proposal.ErrNotMember, err, "outsider")

	err = decide(ctx, fixtures.Bob, id, proposal.Approve, 1<<20)
	require.Nil(t, err, "bob approves")

	r := resolved(t, ctx)
	assert.Equal(t, proposal.StateDone, r.State, "done")
	assert.Nil(t, r.Error, "no error")

	remarks := ctx.Events.Find(constants.ModuleSystem, "Remarked")
	require.Equal(t, 1, len(remarks), "dispatched once")
	assert.Equal(t, acme.DaoKey, remarks[0].Event.(runtime.Remarked).Sender, "as the dao key")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleDao, "DaoDispatched")), "dispatched event")
}

func TestRejectedByDao(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, acme := setup(t)
	id := propose(t, ctx, []proposal.Item{{Signer: acme.DaoKey, Call: remark("hello")}})

	err := decide(ctx, fixtures.Bob, id, proposal.Reject, 0)
	require.Nil(t, err, "bob rejects")

	assert.Equal(t, proposal.StateRejected, resolved(t, ctx).State, "rejected")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "not dispatched")

	_, err = proposal.Get(ctx.Tx, ctx.DB, id)
	assert.Equal(t, proposal.ErrNotFound, err, "deleted")

	list, err := proposal.ListByCreator(ctx.Tx, ctx.DB, fixtures.Alice.Account(), 0, 10)
	assert.Nil(t, err, "list")
	assert.Equal(t, 0, len(list), "index removed")
}

func TestFailedBatchRollsBack(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()

	// the nested propose has an empty batch so it fails on dispatch
	id := propose(t, ctx, []proposal.Item{
		{Signer: alice, Call: remark("first")},
		{Signer: alice, Call: proposal.ProposeCall(nil, nil)},
		{Signer: alice, Call: remark("never")},
	})

	err := decide(ctx, fixtures.Alice, id, proposal.Approve, 100000)
	require.Nil(t, err, "decide succeeds")

	r := resolved(t, ctx)
	assert.Equal(t, proposal.StateFailed, r.State, "failed")
	require.NotNil(t, r.Error, "error surfaced")
	assert.Equal(t, fault.DiscriminantOf(proposal.ErrEmptyBatch), *r.Error, "first failing item")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "first item rolled back")

	_, err = proposal.Get(ctx.Tx, ctx.DB, id)
	assert.Equal(t, proposal.ErrNotFound, err, "deleted")
}

func TestNestedProposal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	inner := []proposal.Item{{Signer: bob, Call: remark("inner")}}
	id := propose(t, ctx, []proposal.Item{{Signer: alice, Call: proposal.ProposeCall(inner, nil)}})

	err := decide(ctx, fixtures.Alice, id, proposal.Approve, 100000)
	require.Nil(t, err, "approve outer")
	assert.Equal(t, proposal.StateDone, resolved(t, ctx).State, "outer done")

	list, err := proposal.ListByCreator(ctx.Tx, ctx.DB, alice, 0, 10)
	require.Nil(t, err, "list")
	require.Equal(t, 1, len(list), "inner remains")
	assert.Equal(t, proposal.Timepoint(1, 0, 1), list[0].Id, "next sequence of the extrinsic")
	assert.Equal(t, bob, list[0].Decisions[0].Signer, "inner signer")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "inner is independent")

	err = decide(ctx, fixtures.Bob, list[0].Id, proposal.Approve, remarkWeight)
	require.Nil(t, err, "approve inner")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "inner dispatched")
}

func TestBounds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()
	signed := ctx.WithOrigin(fixtures.Signed(fixtures.Alice))

	level3 := []proposal.Item{{Signer: alice, Call: remark("deep")}}
	level2 := []proposal.Item{{Signer: alice, Call: proposal.ProposeCall(level3, nil)}}
	level1 := []proposal.Item{{Signer: alice, Call: proposal.ProposeCall(level2, nil)}}

	depth, err := proposal.Depth(level1)
	assert.Nil(t, err, "depth")
	assert.Equal(t, 3, depth, "three levels")

	_, err = proposal.Propose(signed, alice, level1, nil)
	assert.Equal(t, proposal.ErrReachDepthLimit, err, "too deep")

	_, err = proposal.Propose(signed, alice, level2, nil)
	assert.Nil(t, err, "two levels allowed")

	ctx.Parameters.SizeLimit = 2
	wide := []proposal.Item{
		{Signer: alice, Call: remark("1")},
		{Signer: alice, Call: remark("2")},
		{Signer: alice, Call: remark("3")},
	}
	_, err = proposal.Propose(signed, alice, wide, nil)
	assert.Equal(t, proposal.ErrReachSizeLimit, err, "too wide")

	nested := []proposal.Item{
		{Signer: alice, Call: proposal.ProposeCall(wide[:2], nil)},
		{Signer: alice, Call: proposal.ProposeCall(wide[2:], nil)},
	}
	_, err = proposal.Propose(signed, alice, nested, nil)
	assert.Equal(t, proposal.ErrReachSizeLimit, err, "level total too wide")

	_, err = proposal.Propose(signed, alice, nil, nil)
	assert.Equal(t, proposal.ErrEmptyBatch, err, "empty")

	unknown := []proposal.Item{{Signer: alice, Call: runtime.Call{Module: 99}}}
	_, err = proposal.Propose(signed, alice, unknown, nil)
	assert.Equal(t, fault.CallNotFound, err, "unknown call")
}

func TestSelfReference(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()
	external := proposal.ProposalId{0xaa}

	direct := []proposal.Item{{Signer: alice, Call: proposal.DecideCall(external, proposal.Approve, 0)}}
	_, err := proposal.Propose(ctx, alice, direct, &external)
	assert.Equal(t, proposal.ErrSelfReference, err, "direct")

	nested := []proposal.Item{{Signer: alice, Call: proposal.ProposeCall(direct, nil)}}
	_, err = proposal.Propose(ctx, alice, nested, &external)
	assert.Equal(t, proposal.ErrSelfReference, err, "nested")

	other := proposal.ProposalId{0xbb}
	_, err = proposal.Propose(ctx, alice, direct, &other)
	assert.Nil(t, err, "decides another proposal")

	_, err = proposal.Propose(ctx, alice, direct, &other)
	assert.Equal(t, proposal.ErrExists, err, "duplicate id")
}

func TestDecisions(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()

	id := propose(t, ctx, []proposal.Item{
		{Signer: alice, Call: remark("a")},
		{Signer: bob, Call: remark("b")},
		{Signer: alice, Call: remark("c")},
	})
	p, err := proposal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "stored")
	require.Equal(t, 2, len(p.Decisions), "unique signers")
	assert.Equal(t, alice, p.Decisions[0].Signer, "first signer")
	assert.Equal(t, bob, p.Decisions[1].Signer, "second signer")

	err = decide(ctx, fixtures.Dave, id, proposal.Approve, 0)
	assert.Equal(t, proposal.ErrNotMember, err, "outsider")

	err = decide(ctx, fixtures.Alice, id, proposal.Decision(7), 0)
	assert.Equal(t, proposal.ErrUnknownDecision, err, "bad decision")

	err = decide(ctx, fixtures.Alice, id, proposal.Approve, 0)
	require.Nil(t, err, "approve")
	err = decide(ctx, fixtures.Alice, id, proposal.Pending, 0)
	require.Nil(t, err, "revoke")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleProposal, "RevokedApproval")), "revoked event")

	p, err = proposal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "stored")
	assert.Equal(t, proposal.Pending, p.Decisions[0].Decision, "back to pending")

	err = decide(ctx, fixtures.Alice, id, proposal.Approve, 0)
	require.Nil(t, err, "approve again")
	err = decide(ctx, fixtures.Bob, id, proposal.Approve, 2*remarkWeight-1)
	assert.Equal(t, proposal.ErrWeightHintTooLow, err, "hint below batch weight")

	_, err = proposal.Get(ctx.Tx, ctx.DB, id)
	assert.Nil(t, err, "still pending after a failed decide")

	err = decide(ctx, fixtures.Bob, id, proposal.Approve, 3*remarkWeight)
	require.Nil(t, err, "approve with enough weight")
	assert.Equal(t, 3, len(ctx.Events.Find(constants.ModuleSystem, "Remarked")), "whole batch")
}

func TestExpire(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	id := propose(t, ctx, []proposal.Item{{Signer: fixtures.Bob.Account(), Call: remark("x")}})
	call := proposal.ExpireCall(id)

	_, err := ctx.Dispatcher.ValidateUnsigned(ctx, call)
	assert.Equal(t, proposal.ErrNotExpired, err, "too early")

	ctx.Timestamp += ctx.Parameters.ProposalTtl
	validity, err := ctx.Dispatcher.ValidateUnsigned(ctx, call)
	require.Nil(t, err, "stale")
	assert.NotEqual(t, 0, len(validity.Provides), "deduplication tag")

	err = ctx.Dispatch(fixtures.Signed(fixtures.Alice), call)
	assert.Equal(t, fault.BadOrigin, err, "unsigned only")

	err = ctx.Dispatch(runtime.None(), call)
	require.Nil(t, err, "expire")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModuleProposal, "Expired")), "expired event")

	_, err = proposal.Get(ctx.Tx, ctx.DB, id)
	assert.Equal(t, proposal.ErrNotFound, err, "deleted")

	_, err = ctx.Dispatcher.ValidateUnsigned(ctx, call)
	assert.Equal(t, proposal.ErrNotFound, err, "nothing left")
}

func TestListByCreator(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, _ := setup(t)
	alice := fixtures.Alice.Account()
	batch := []proposal.Item{{Signer: alice, Call: remark("x")}}

	ids := []proposal.ProposalId{}
	for i := byte(3); i > 0; i -= 1 {
		id := proposal.ProposalId{i}
		_, err := proposal.Propose(ctx, alice, batch, &id)
		require.Nil(t, err, "propose")
		ids = append(ids, id)
	}

	list, err := proposal.ListByCreator(ctx.Tx, ctx.DB, alice, 1, 10)
	require.Nil(t, err, "list")
	require.Equal(t, 2, len(list), "after start")
	assert.Equal(t, ids[1], list[0].Id, "insertion order")
	assert.Equal(t, ids[2], list[1].Id, "insertion order")

	list, err = proposal.ListByCreator(ctx.Tx, ctx.DB, fixtures.Bob.Account(), 0, 10)
	assert.Nil(t, err, "other author")
	assert.Equal(t, 0, len(list), "none")

	_, err = proposal.ListByCreator(ctx.Tx, ctx.DB, alice, -1, 10)
	assert.Equal(t, fault.InvalidCursor, err, "bad start")
}
