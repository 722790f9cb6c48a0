// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/chain"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/domain"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/genesis"
	"github.com/bitmark-inc/ipchaind/modules"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/vesting"
)

const metadata = "0101010101010101010101010101010101010101010101010101010101010101"

func genesisText() string {
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()
	carol := fixtures.Carol.Account()
	return fmt.Sprintf(`
local alice = "%s"
local bob = "%s"
local carol = "%s"

return {
    chain = "local",
    timestamp = 1600000000,
    balances = {
        { account = alice, amount = 100000 },
        { account = bob, amount = 5000 },
    },
    assets = {
        {
            owner = alice,
            managed = true,
            limited = true,
            balances = {
                { account = carol, amount = 700 },
            },
        },
    },
    daos = {
        {
            label = "studio",
            owner = alice,
            signatories = { alice, bob, carol },
            threshold = 2,
            metadata = "%s",
        },
    },
    portals = {
        { dao = "studio", delegate = bob },
    },
    domains = {
        { name = "studio.ip", owner = alice },
    },
    vesting = {
        {
            account = bob,
            plan = {
                start = 1600000000,
                cliff = 0,
                total_duration = 1000,
                interval = 100,
                initial_amount = 0,
                total_amount = 2000,
            },
        },
    },
}
`, alice, bob, carol, metadata)
}

func writeFile(t *testing.T, text string) string {
	fileName := filepath.Join(t.TempDir(), "genesis.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte(text), 0600), "write genesis")
	return fileName
}

func TestLoad(t *testing.T) {
	g, err := genesis.Load(writeFile(t, genesisText()), chain.Local)
	require.Nil(t, err, "load")

	assert.Equal(t, chain.Local, g.Chain, "chain")
	assert.Equal(t, uint64(1600000000), g.Timestamp, "timestamp")
	assert.Equal(t, 2, len(g.Balances), "balances")
	assert.Equal(t, uint64(5000), g.Balances[1].Amount, "bob amount")
	require.Equal(t, 1, len(g.Assets), "assets")
	assert.True(t, g.Assets[0].Managed, "managed")
	assert.True(t, g.Assets[0].Limited, "limited")
	require.Equal(t, 1, len(g.Daos), "daos")
	assert.Equal(t, uint16(2), g.Daos[0].Threshold, "threshold")
	assert.Equal(t, 3, len(g.Daos[0].Signatories), "signatories")
	require.Equal(t, 1, len(g.Vesting), "vesting")
	assert.Equal(t, uint64(100), g.Vesting[0].Plan.Interval, "interval")
}

func TestLoadWrongChain(t *testing.T) {
	_, err := genesis.Load(writeFile(t, genesisText()), chain.IPChain)
	assert.Equal(t, fault.InvalidChain, err, "wrong chain")
}

func TestLoadNotTable(t *testing.T) {
	_, err := genesis.Load(writeFile(t, `return "genesis"`), chain.Local)
	assert.Equal(t, fault.InvalidConfiguration, err, "not a table")
}

func TestSeed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	g, err := genesis.Load(writeFile(t, genesisText()), chain.Local)
	require.Nil(t, err, "load")

	db := fixtures.NewDatabase(t)
	ex := modules.NewExecutive(db, runtime.DefaultParameters())
	header, err := ex.ApplyGenesis(g.Timestamp, g.Seed)
	require.Nil(t, err, "apply genesis")
	assert.Equal(t, uint64(0), header.Number, "number")
	assert.Equal(t, g.Timestamp, header.Timestamp, "timestamp")

	tx := db.NewTransaction()
	assert.Equal(t, uint64(100000), fungible.Balance(tx, db, fungible.Native, fixtures.Alice.Account()), "alice")
	assert.Equal(t, uint64(5000), fungible.Balance(tx, db, fungible.Native, fixtures.Bob.Account()), "bob")
	assert.Equal(t, uint64(2000), fungible.Locked(tx, db, fungible.Native, fixtures.Bob.Account()), "bob locked")
	_, ok := vesting.Get(tx, db, fixtures.Bob.Account())
	assert.True(t, ok, "vesting plan")

	asset, err := fungible.Get(tx, db, fungible.AssetId(1))
	require.Nil(t, err, "asset")
	assert.True(t, asset.Limited, "limited")
	assert.Equal(t, uint64(700), asset.Supply, "supply")

	id, _ := dao.IdFromString("studio")
	d, err := dao.Get(tx, db, id)
	require.Nil(t, err, "dao")
	assert.Equal(t, fixtures.Alice.Account(), d.Owner, "dao owner")
	require.NotNil(t, d.Metadata, "dao metadata")
	assert.Equal(t, byte(1), d.Metadata[0], "metadata")

	p, err := portal.Get(tx, db, portal.PortalId(id))
	require.Nil(t, err, "portal")
	assert.Equal(t, fixtures.Bob.Account(), p.Delegate, "delegate")
	assert.Equal(t, dao.KeyOf(id), p.Owner, "portal owner")

	dm, err := domain.Get(tx, db, "studio.ip")
	require.Nil(t, err, "domain")
	assert.Equal(t, fixtures.Alice.Account(), dm.Owner, "domain owner")

	_, err = ex.ApplyGenesis(g.Timestamp, g.Seed)
	assert.Equal(t, fault.AlreadyInitialised, err, "second genesis")
}

func TestSeedBadAccount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	g := &genesis.Genesis{
		Chain:     chain.Local,
		Timestamp: 10,
		Balances: []genesis.Balance{
			{Account: "not-an-account", Amount: 1},
		},
	}
	db := fixtures.NewDatabase(t)
	ex := modules.NewExecutive(db, runtime.DefaultParameters())
	_, err := ex.ApplyGenesis(g.Timestamp, g.Seed)
	assert.Equal(t, fault.CannotDecodeAccount, err, "bad account")

	_, ok := ex.Best()
	assert.False(t, ok, "nothing stored")
}
