// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/executive"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/modules"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func remark(text string) runtime.Call {
	return runtime.NewCall(constants.ModuleSystem, runtime.FnRemark, runtime.Remark{Data: []byte(text)})
}

func start(t *testing.T) (*executive.Executive, portal.PortalId) {
	db := fixtures.NewDatabase(t)
	ex := modules.NewExecutive(db, runtime.DefaultParameters())

	tenant := portal.PortalId{}
	_, err := ex.ApplyGenesis(1000, func(ctx *runtime.Context) error {
		fungible.EnsureNative(ctx)
		err := fungible.Mint(ctx, fungible.Native, fixtures.Alice.Account(), 1000)
		if nil != err {
			return err
		}
		id, _ := dao.IdFromString("tenant")
		d, err := dao.Create(ctx, fixtures.Alice.Account(), id, dao.Authority{
			Signatories: []account.AccountId{fixtures.Alice.Account()},
			Threshold:   1,
		}, nil)
		if nil != err {
			return err
		}
		p, err := portal.Create(ctx, d.DaoKey, fixtures.Bob.Account(), nil)
		tenant = p.Id
		return err
	})
	require.Nil(t, err, "genesis")
	return ex, tenant
}

func signed(t *testing.T, ex *executive.Executive, kp account.KeyPair, call runtime.Call, extra extrinsic.Extra) []byte {
	x, err := ex.Sign(kp, call, extra)
	require.Nil(t, err, "sign")
	return x.Bytes()
}

// build on best and apply
func seal(t *testing.T, ex *executive.Executive, timestamp uint64, candidates ...[]byte) ([]runtime.EventRecord, [][]byte) {
	b, rejected, err := ex.BuildBlock(candidates, timestamp)
	require.Nil(t, err, "build")
	records, err := ex.ApplyBlock(b)
	require.Nil(t, err, "apply")
	return records, rejected
}

func names(records []runtime.EventRecord) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.Event.EventName()
	}
	return result
}

func TestPipelineOrder(t *testing.T) {
	expected := []string{
		"CheckSpecVersion",
		"CheckTxVersion",
		"CheckGenesis",
		"CheckMortality",
		"CheckNonce",
		"CheckWeight",
		"ChargeTransactionPayment",
		"CheckPortalExt",
	}
	assert.Equal(t, expected, modules.Pipeline().Identifiers(), "pipeline")
}

func TestSignedThroughPortal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex, tenant := start(t)
	db := ex.Database()

	raw := signed(t, ex, fixtures.Alice, remark("hello"), extrinsic.Extra{Portal: tenant.Tag()})
	require.Nil(t, ex.Validate(raw, 1001), "validate")

	records, rejected := seal(t, ex, 1001, raw)
	assert.Equal(t, 0, len(rejected), "nothing rejected")
	assert.Equal(t, []string{"Remarked", "ExtrinsicSuccess"}, names(records), "events")
	assert.Equal(t, uint64(1), runtime.Nonce(db.NewTransaction(), db, fixtures.Alice.Account()), "nonce")

	tags := portal.Tags(db.NewTransaction(), db, 1)
	assert.Equal(t, map[portal.PortalId][]uint32{tenant: {0}}, tags, "tagged")

	stored, err := block.Events(db.NewTransaction(), db, 1)
	require.Nil(t, err, "stored events")
	assert.Equal(t, len(records), len(stored), "stored event count")

	// replay is stale
	assert.Equal(t, fault.StaleTransaction, ex.Validate(raw, 1002), "replay")
	_, rejected = seal(t, ex, 1002, raw)
	assert.Equal(t, 1, len(rejected), "replay rejected")
}

func TestUnknownPortalIsInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex, _ := start(t)

	other := portal.PortalId{0xee}
	raw := signed(t, ex, fixtures.Alice, remark("x"), extrinsic.Extra{Portal: other.Tag()})
	assert.Equal(t, portal.ErrUnknownPortal, ex.Validate(raw, 1001), "unknown portal")
}

func TestFailedCallKeepsNonce(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex, _ := start(t)
	db := ex.Database()

	call := runtime.NewCall(constants.ModuleFungible, fungible.FnTransfer, fungible.TransferArgs{
		Asset:  fungible.Native,
		To:     fixtures.Bob.Account(),
		Amount: 5000,
	})
	raw := signed(t, ex, fixtures.Alice, call, extrinsic.Extra{})
	records, rejected := seal(t, ex, 1001, raw)
	require.Equal(t, 0, len(rejected), "included")
	require.Equal(t, []string{"ExtrinsicFailed"}, names(records), "failed")

	failed := records[0].Event.(runtime.ExtrinsicFailed)
	assert.Equal(t, fault.DiscriminantOf(fungible.ErrInsufficientBalance), failed.Error, "discriminant")

	tx := db.NewTransaction()
	assert.Equal(t, uint64(1), runtime.Nonce(tx, db, fixtures.Alice.Account()), "nonce used")
	assert.Equal(t, uint64(1000), fungible.Balance(tx, db, fungible.Native, fixtures.Alice.Account()), "balance kept")
}

func TestFutureNonce(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex, _ := start(t)

	first := signed(t, ex, fixtures.Alice, remark("first"), extrinsic.Extra{Nonce: 0})
	second := signed(t, ex, fixtures.Alice, remark("second"), extrinsic.Extra{Nonce: 1})
	require.Nil(t, ex.Validate(second, 1001), "future nonce accepted by the pool")

	// in order they both fit one block
	records, rejected := seal(t, ex, 1001, first, second)
	assert.Equal(t, 0, len(rejected), "both included")
	assert.Equal(t, "system.remark", ex.Dispatcher().Name(remark("")), "dispatcher name")
	assert.Equal(t, 4, len(records), "two remarks two successes")
}
