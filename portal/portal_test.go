// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/portal/mocks"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func setup(t *testing.T) (*runtime.Context, dao.Dao) {
	d := runtime.NewDispatcher()
	runtime.RegisterSystem(d)
	dao.Register(d)
	portal.Register(d)
	ctx := fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)

	id, _ := dao.IdFromString("tenant")
	authority := dao.Authority{
		Signatories: []account.AccountId{fixtures.Alice.Account()},
		Threshold:   1,
	}
	tenant, err := dao.Create(ctx, fixtures.Alice.Account(), id, authority, nil)
	require.Nil(t, err, "create dao")
	return ctx, tenant
}

// flush the current block and continue in a later one
func at(t *testing.T, ctx *runtime.Context, block uint64) *runtime.Context {
	require.Nil(t, ctx.Tx.Flush(), "flush")
	return fixtures.NewContext(ctx.DB, ctx.Dispatcher, block, 100+block)
}

func remark(text string) runtime.Call {
	return runtime.NewCall(constants.ModuleSystem, runtime.FnRemark, runtime.Remark{Data: []byte(text)})
}

func create(t *testing.T, ctx *runtime.Context, tenant dao.Dao, delegate account.KeyPair) portal.PortalId {
	call := runtime.NewCall(constants.ModulePortal, portal.FnCreate, portal.CreateArgs{
		Delegate: delegate.Account(),
	})
	err := ctx.Dispatch(runtime.Signed(tenant.DaoKey), call)
	require.Nil(t, err, "create portal")
	events := ctx.Events.Find(constants.ModulePortal, "PortalCreated")
	require.Equal(t, 1, len(events), "created event")
	return events[0].Event.(portal.PortalCreated).Id
}

// an extrinsic from alice routed through the portal
func wrapped(t *testing.T, id portal.PortalId, call runtime.Call) []byte {
	x, err := extrinsic.NewSigned(fixtures.Alice, portal.ExecCall(id, call), extrinsic.Extra{}, nil)
	require.Nil(t, err, "sign")
	return x.Bytes()
}

func sign(ctx *runtime.Context, delegate account.KeyPair, raw []byte) error {
	call := runtime.NewCall(constants.ModulePortal, portal.FnSign, portal.SignArgs{Extrinsic: raw})
	return ctx.Dispatch(fixtures.Signed(delegate), call)
}

func TestCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)

	call := runtime.NewCall(constants.ModulePortal, portal.FnCreate, portal.CreateArgs{
		Delegate: fixtures.Bob.Account(),
	})
	err := ctx.Dispatch(fixtures.Signed(fixtures.Carol), call)
	assert.Equal(t, portal.ErrNotTenant, err, "plain account")

	id := create(t, ctx, tenant, fixtures.Bob)
	assert.Equal(t, portal.PortalId(tenant.Id), id, "portal of the tenant")

	p, err := portal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "stored")
	assert.Equal(t, tenant.DaoKey, p.Owner, "owner")
	assert.Equal(t, fixtures.Bob.Account(), p.Delegate, "delegate")

	owned, ok := portal.OfOwner(ctx.Tx, ctx.DB, tenant.DaoKey)
	assert.True(t, ok, "owner index")
	assert.Equal(t, id, owned, "owner index value")

	err = ctx.Dispatch(runtime.Signed(tenant.DaoKey), call)
	assert.Equal(t, portal.ErrPortalAlreadyExist, err, "second portal")

	err = ctx.Dispatch(runtime.Root(), call)
	assert.Equal(t, fault.BadOrigin, err, "root")
}

func TestUpdate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)

	delegate := fixtures.Carol.Account()
	call := runtime.NewCall(constants.ModulePortal, portal.FnUpdate, portal.UpdateArgs{Delegate: &delegate})
	err := ctx.Dispatch(runtime.Signed(tenant.DaoKey), call)
	assert.Equal(t, portal.ErrUnknownPortal, err, "no portal yet")

	id := create(t, ctx, tenant, fixtures.Bob)
	err = ctx.Dispatch(runtime.Signed(tenant.DaoKey), call)
	require.Nil(t, err, "change delegate")

	metadata := &dao.Metadata{1, 2, 3}
	call = runtime.NewCall(constants.ModulePortal, portal.FnUpdate, portal.UpdateArgs{Metadata: metadata})
	err = ctx.Dispatch(runtime.Signed(tenant.DaoKey), call)
	require.Nil(t, err, "change metadata")

	p, err := portal.Get(ctx.Tx, ctx.DB, id)
	require.Nil(t, err, "stored")
	assert.Equal(t, delegate, p.Delegate, "delegate kept")
	require.NotNil(t, p.Metadata, "metadata")
	assert.Equal(t, *metadata, *p.Metadata, "metadata value")
	assert.Equal(t, 2, len(ctx.Events.Find(constants.ModulePortal, "PortalUpdated")), "updated events")
}

func TestSignAndExec(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	id := create(t, ctx, tenant, fixtures.Bob)

	raw := wrapped(t, id, remark("through portal"))

	assert.Equal(t, portal.ErrDelegateMismatch, sign(ctx, fixtures.Carol, raw), "wrong delegate")

	plain, err := extrinsic.NewSigned(fixtures.Alice, remark("plain"), extrinsic.Extra{}, nil)
	require.Nil(t, err, "sign plain")
	assert.Equal(t, portal.ErrNotExecCall, sign(ctx, fixtures.Bob, plain.Bytes()), "not exec")

	require.Nil(t, sign(ctx, fixtures.Bob, raw), "delegate signs")
	assert.Equal(t, portal.ErrAlreadySigned, sign(ctx, fixtures.Bob, raw), "twice")

	hash := runtime.HashOf(raw)
	signed, ok := portal.SignedBy(ctx.Tx, ctx.DB, hash)
	assert.True(t, ok, "signed entry")
	assert.Equal(t, id, signed, "signed portal")

	// an extrinsic that was never countersigned
	other := ctx.ForExtrinsic(1, runtime.HashOf([]byte("other")), 10, fixtures.Signed(fixtures.Alice))
	err = other.Dispatch(other.Origin, portal.ExecCall(id, remark("through portal")))
	assert.Equal(t, portal.ErrNotSigned, err, "not countersigned")

	xctx := ctx.ForExtrinsic(2, hash, len(raw), fixtures.Signed(fixtures.Alice))
	err = xctx.Dispatch(xctx.Origin, portal.ExecCall(id, remark("through portal")))
	require.Nil(t, err, "exec")

	remarked := ctx.Events.Find(constants.ModuleSystem, "Remarked")
	require.Equal(t, 1, len(remarked), "inner call ran")
	assert.Equal(t, fixtures.Alice.Account(), remarked[0].Event.(runtime.Remarked).Sender, "as the caller")
	assert.Equal(t, 1, len(ctx.Events.Find(constants.ModulePortal, "Executed")), "executed event")

	_, ok = portal.SignedBy(ctx.Tx, ctx.DB, hash)
	assert.False(t, ok, "signature consumed")

	tags := portal.Tags(ctx.Tx, ctx.DB, 1)
	assert.Equal(t, map[portal.PortalId][]uint32{id: {2}}, tags, "tagged")
	tagged, ok := portal.TagOf(ctx.Tx, ctx.DB, 1, 2)
	assert.True(t, ok, "tag of extrinsic")
	assert.Equal(t, id, tagged, "tag value")
	_, ok = portal.TagOf(ctx.Tx, ctx.DB, 1, 1)
	assert.False(t, ok, "untagged extrinsic")
}

func TestExecWrongPortal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	id := create(t, ctx, tenant, fixtures.Bob)

	raw := wrapped(t, id, remark("x"))
	require.Nil(t, sign(ctx, fixtures.Bob, raw), "delegate signs")

	otherId := portal.PortalId{0xff}
	xctx := ctx.ForExtrinsic(1, runtime.HashOf(raw), len(raw), fixtures.Signed(fixtures.Alice))
	err := xctx.Dispatch(xctx.Origin, portal.ExecCall(otherId, remark("x")))
	assert.Equal(t, portal.ErrPortalMismatch, err, "other portal")

	_, ok := portal.SignedBy(ctx.Tx, ctx.DB, runtime.HashOf(raw))
	assert.True(t, ok, "still signed")
	assert.Equal(t, 0, len(portal.Tags(ctx.Tx, ctx.DB, 1)), "no tag")
}

func TestExecInnerFailureIsConsumed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	id := create(t, ctx, tenant, fixtures.Bob)

	bad := runtime.NewCall(constants.ModuleSystem, 99, runtime.Remark{})
	raw := wrapped(t, id, bad)
	require.Nil(t, sign(ctx, fixtures.Bob, raw), "delegate signs")

	hash := runtime.HashOf(raw)
	xctx := ctx.ForExtrinsic(3, hash, len(raw), fixtures.Signed(fixtures.Alice))
	err := xctx.Dispatch(xctx.Origin, portal.ExecCall(id, bad))
	require.Nil(t, err, "exec succeeds")

	executed := ctx.Events.Find(constants.ModulePortal, "Executed")
	require.Equal(t, 1, len(executed), "executed event")
	ev := executed[0].Event.(portal.Executed)
	require.NotNil(t, ev.Error, "error recorded")
	assert.Equal(t, fault.DiscriminantOf(fault.CallNotFound), *ev.Error, "inner error")

	_, ok := portal.SignedBy(ctx.Tx, ctx.DB, hash)
	assert.False(t, ok, "signature consumed")
	tagged, ok := portal.TagOf(ctx.Tx, ctx.DB, 1, 3)
	assert.True(t, ok, "still tagged")
	assert.Equal(t, id, tagged, "tag value")

	err = xctx.Dispatch(xctx.Origin, portal.ExecCall(id, bad))
	assert.Equal(t, portal.ErrNotSigned, err, "no replay")
}

func schedule(ctx *runtime.Context, tenant dao.Dao, call runtime.Call, due uint64) error {
	return ctx.Dispatch(runtime.Signed(tenant.DaoKey), runtime.NewCall(constants.ModulePortal, portal.FnSchedule, portal.ScheduleArgs{
		Call: call,
		Due:  due,
	}))
}

func TestScheduleAndExecPostponed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)

	assert.Equal(t, portal.ErrNotPortalOwner, schedule(ctx, tenant, remark("later"), 3), "no portal")
	id := create(t, ctx, tenant, fixtures.Bob)

	assert.Equal(t, portal.ErrDueInPast, schedule(ctx, tenant, remark("later"), 1), "current block")
	require.Nil(t, schedule(ctx, tenant, remark("later"), 3), "schedule")

	scheduled := ctx.Events.Find(constants.ModulePortal, "Scheduled")
	require.Equal(t, 1, len(scheduled), "scheduled event")
	sequence := scheduled[0].Event.(portal.Scheduled).Sequence

	p, err := portal.GetPostponed(ctx.Tx, ctx.DB, id, sequence)
	require.Nil(t, err, "stored")
	call := portal.ExecPostponedCall(p)

	ctx = at(t, ctx, 2)
	assert.Equal(t, 0, len(portal.Due(ctx.Tx, ctx.DB, 2)), "not due")
	_, err = ctx.Dispatcher.ValidateUnsigned(ctx.WithOrigin(runtime.None()), call)
	assert.Equal(t, portal.ErrNotDue, err, "early")

	ctx = at(t, ctx, 3)
	assert.Equal(t, 1, len(portal.Due(ctx.Tx, ctx.DB, 3)), "due")

	tampered := portal.ExecPostponedCall(portal.Postponed{Portal: id, Sequence: sequence, Call: remark("other")})
	_, err = ctx.Dispatcher.ValidateUnsigned(ctx.WithOrigin(runtime.None()), tampered)
	assert.Equal(t, portal.ErrCallMismatch, err, "different call")

	validity, err := ctx.Dispatcher.ValidateUnsigned(ctx.WithOrigin(runtime.None()), call)
	require.Nil(t, err, "valid")
	assert.NotEmpty(t, validity.Provides, "provides tag")

	err = ctx.Dispatch(fixtures.Signed(fixtures.Alice), call)
	assert.Equal(t, fault.BadOrigin, err, "signed origin")

	err = ctx.Dispatch(runtime.None(), call)
	require.Nil(t, err, "exec postponed")

	remarked := ctx.Events.Find(constants.ModuleSystem, "Remarked")
	require.Equal(t, 1, len(remarked), "inner call ran")
	assert.Equal(t, tenant.DaoKey, remarked[0].Event.(runtime.Remarked).Sender, "as the owner")

	executed := ctx.Events.Find(constants.ModulePortal, "PostponedExecuted")
	require.Equal(t, 1, len(executed), "executed event")
	assert.Nil(t, executed[0].Event.(portal.PostponedExecuted).Error, "no error")

	_, err = portal.GetPostponed(ctx.Tx, ctx.DB, id, sequence)
	assert.Equal(t, portal.ErrUnknownPostponed, err, "consumed")
	assert.Equal(t, 0, len(portal.Due(ctx.Tx, ctx.DB, 3)), "due index cleared")
	assert.Equal(t, []uint32{0}, portal.Tags(ctx.Tx, ctx.DB, 3)[id], "tagged")

	err = ctx.Dispatch(runtime.None(), call)
	assert.Equal(t, portal.ErrUnknownPostponed, err, "once only")
}

func TestPostponedFailureIsConsumed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	create(t, ctx, tenant, fixtures.Bob)

	// by block 3 a schedule for block 2 is in the past
	inner := runtime.NewCall(constants.ModulePortal, portal.FnSchedule, portal.ScheduleArgs{Call: remark("x"), Due: 2})
	require.Nil(t, schedule(ctx, tenant, inner, 3), "schedule")

	ctx = at(t, ctx, 3)
	due := portal.Due(ctx.Tx, ctx.DB, 3)
	require.Equal(t, 1, len(due), "due")

	err := ctx.Dispatch(runtime.None(), portal.ExecPostponedCall(due[0]))
	require.Nil(t, err, "outer call succeeds")

	executed := ctx.Events.Find(constants.ModulePortal, "PostponedExecuted")
	require.Equal(t, 1, len(executed), "executed event")
	ev := executed[0].Event.(portal.PostponedExecuted)
	require.NotNil(t, ev.Error, "inner error recorded")
	assert.Equal(t, fault.DiscriminantOf(portal.ErrDueInPast), *ev.Error, "inner error value")
	assert.Equal(t, 0, len(portal.Due(ctx.Tx, ctx.DB, 3)), "consumed")
	assert.Equal(t, 0, len(ctx.Events.Find(constants.ModulePortal, "Scheduled")), "inner effects discarded")
}

func TestCheckPortalExt(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	id := portal.PortalId(tenant.Id)
	ext := portal.CheckPortalExt{}

	assert.Equal(t, "CheckPortalExt", ext.Identifier(), "identifier")

	x := &extrinsic.Extrinsic{
		Signature: &extrinsic.Signature{
			Signer: fixtures.Alice.Account(),
			Extra:  extrinsic.Extra{Portal: id.Tag()},
		},
		Call: remark("tagged"),
	}
	info := extrinsic.DispatchInfo{Weight: 1000, Length: 10}

	a, err := ext.AdditionalSigned(ctx, &x.Signature.Extra)
	require.Nil(t, err, "additional")
	assert.Empty(t, a, "nothing additional")

	assert.Equal(t, portal.ErrUnknownPortal, ext.PreDispatch(ctx, x, info), "unknown portal")

	create(t, ctx, tenant, fixtures.Bob)
	xctx := ctx.ForExtrinsic(4, runtime.HashOf([]byte("tagged")), 10, fixtures.Signed(fixtures.Alice))
	require.Nil(t, ext.PreDispatch(xctx, x, info), "known portal")
	require.Nil(t, ext.PostDispatch(xctx, x, info, fault.CallNotFound), "post dispatch")

	tagged, ok := portal.TagOf(ctx.Tx, ctx.DB, 1, 4)
	assert.True(t, ok, "tagged even if the call failed")
	assert.Equal(t, id, tagged, "tag value")

	untagged := &extrinsic.Extrinsic{
		Signature: &extrinsic.Signature{Signer: fixtures.Alice.Account()},
		Call:      remark("plain"),
	}
	xctx = ctx.ForExtrinsic(5, runtime.HashOf([]byte("plain")), 10, fixtures.Signed(fixtures.Alice))
	require.Nil(t, ext.PreDispatch(xctx, untagged, info), "no portal")
	require.Nil(t, ext.PostDispatch(xctx, untagged, info, nil), "no portal post")
	_, ok = portal.TagOf(ctx.Tx, ctx.DB, 1, 5)
	assert.False(t, ok, "not tagged")
}

func TestWorker(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, tenant := setup(t)
	create(t, ctx, tenant, fixtures.Bob)
	require.Nil(t, schedule(ctx, tenant, remark("a"), 3), "schedule a")
	require.Nil(t, schedule(ctx, tenant, remark("b"), 5), "schedule b")
	require.Nil(t, ctx.Tx.Flush(), "flush")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	calls := []runtime.Call{}
	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().SubmitUnsigned(gomock.Any()).DoAndReturn(func(call runtime.Call) error {
		calls = append(calls, call)
		return nil
	}).Times(2)

	w := portal.NewWorker(ctx.DB, s)

	assert.Equal(t, 0, w.Process(1), "nothing due at 2")
	assert.Equal(t, 1, w.Process(2), "a due at 3")
	assert.Equal(t, 0, w.Process(3), "a already submitted")
	assert.Equal(t, 1, w.Process(4), "b due at 5")
	require.Equal(t, 2, len(calls), "submitted")

	for _, call := range calls {
		assert.True(t, call.Is(constants.ModulePortal, portal.FnExecPostponed), "exec postponed")
	}
}
