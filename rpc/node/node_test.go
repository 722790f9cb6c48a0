// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/chain"
	"github.com/bitmark-inc/ipchaind/counter"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/mode"
	"github.com/bitmark-inc/ipchaind/modules"
	"github.com/bitmark-inc/ipchaind/reservoir"
	"github.com/bitmark-inc/ipchaind/rpc/mocks"
	"github.com/bitmark-inc/ipchaind/rpc/node"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mode.Initialise(chain.Testing)
	defer mode.Finalise()

	c := mocks.NewMockChain(ctl)
	p := mocks.NewMockPool(ctl)

	ctr := counter.New(10)
	ctr.Acquire()

	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "100", ctr, c, p)

	header := blockrecord.Header{Number: 7, Timestamp: 1000}
	c.EXPECT().Best().Return(header, true).Times(1)
	p.EXPECT().ReadCounters().Return(reservoir.Counts{Signed: 3, Unsigned: 1}).Times(1)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, mode.Starting.String(), reply.Mode, "wrong mode")
	assert.Equal(t, uint64(7), reply.Block.Height, "wrong block height")
	require.NotNil(t, reply.Block.Hash, "block hash")
	assert.Equal(t, header.Hash(), *reply.Block.Hash, "wrong block hash")
	assert.Equal(t, uint64(1), reply.RPCs, "wrong connection count")
	assert.Equal(t, 3, reply.TransactionCounters.Signed, "signed")
	assert.Equal(t, 1, reply.TransactionCounters.Unsigned, "unsigned")
	assert.Equal(t, n.Version, reply.Version, "wrong version")
}

func TestNodeInfoBeforeGenesis(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mode.Initialise(chain.Local)
	defer mode.Finalise()

	c := mocks.NewMockChain(ctl)
	p := mocks.NewMockPool(ctl)
	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", counter.New(1), c, p)

	c.EXPECT().Best().Return(blockrecord.Header{}, false).Times(1)
	p.EXPECT().ReadCounters().Return(reservoir.Counts{}).Times(1)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, uint64(0), reply.Block.Height, "height")
	assert.Nil(t, reply.Block.Hash, "no hash")
}

func TestNodeSubmit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mode.Initialise(chain.Local)
	defer mode.Finalise()

	c := mocks.NewMockChain(ctl)
	p := mocks.NewMockPool(ctl)
	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", counter.New(1), c, p)

	var reply node.SubmitReply
	err := n.Submit(&node.SubmitArguments{Extrinsic: "0x0102"}, &reply)
	assert.Equal(t, fault.NotAvailableDuringStartup, err, "starting")

	mode.Set(mode.Normal)

	hash := runtime.HashOf([]byte{1, 2})
	p.EXPECT().Submit([]byte{1, 2}).Return(hash, nil).Times(1)
	err = n.Submit(&node.SubmitArguments{Extrinsic: "0x0102"}, &reply)
	assert.Nil(t, err, "submit")
	assert.Equal(t, hash, reply.Hash, "hash")

	p.EXPECT().Submit([]byte{3}).Return(runtime.Hash{}, fault.PoolFull).Times(1)
	err = n.Submit(&node.SubmitArguments{Extrinsic: "03"}, &reply)
	assert.Equal(t, fault.DiscriminantOf(fault.PoolFull).String(), err.Error(), "rejected")

	err = n.Submit(&node.SubmitArguments{Extrinsic: "xyz"}, &reply)
	assert.Equal(t, fault.InvalidArguments, err, "not hex")

	err = n.Submit(&node.SubmitArguments{Extrinsic: ""}, &reply)
	assert.Equal(t, fault.InvalidArguments, err, "empty")
}

func TestNodeBlock(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex := modules.NewExecutive(fixtures.NewDatabase(t), runtime.DefaultParameters())
	genesis, err := ex.ApplyGenesis(500, func(ctx *runtime.Context) error {
		fungible.EnsureNative(ctx)
		return fungible.Mint(ctx, fungible.Native, fixtures.Alice.Account(), 1000)
	})
	require.Nil(t, err, "genesis")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", counter.New(1), ex, mocks.NewMockPool(ctl))

	var reply node.BlockReply
	err = n.Block(&node.BlockArguments{Number: 0}, &reply)
	require.Nil(t, err, "block 0")
	assert.Equal(t, genesis.Hash(), reply.Hash, "hash")
	assert.Equal(t, uint64(500), reply.Header.Timestamp, "timestamp")
	assert.NotEqual(t, 0, len(reply.Events), "genesis events")

	err = n.Block(&node.BlockArguments{Number: 1}, &reply)
	assert.NotNil(t, err, "no block 1")
}
