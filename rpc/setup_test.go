// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc/jsonrpc"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/chain"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/mode"
	"github.com/bitmark-inc/ipchaind/modules"
	"github.com/bitmark-inc/ipchaind/reservoir"
	"github.com/bitmark-inc/ipchaind/rpc"
	"github.com/bitmark-inc/ipchaind/rpc/certificate"
	"github.com/bitmark-inc/ipchaind/rpc/listeners"
	"github.com/bitmark-inc/ipchaind/rpc/node"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func TestInitialiseDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ex := modules.NewExecutive(fixtures.NewDatabase(t), runtime.DefaultParameters())
	pool := reservoir.New(ex, 10, time.Hour)

	err := rpc.Initialise(&listeners.RPCConfiguration{}, "1", ex, pool)
	require.Nil(t, err, "disabled")

	err = rpc.Initialise(&listeners.RPCConfiguration{}, "1", ex, pool)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	assert.Nil(t, rpc.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second finalise")
}

func TestInitialiseServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	mode.Initialise(chain.Local)
	defer mode.Finalise()

	ex := modules.NewExecutive(fixtures.NewDatabase(t), runtime.DefaultParameters())
	_, err := ex.ApplyGenesis(10, func(ctx *runtime.Context) error {
		fungible.EnsureNative(ctx)
		return nil
	})
	require.Nil(t, err, "genesis")
	pool := reservoir.New(ex, 10, time.Hour)

	dir := t.TempDir()
	certificateFileName := filepath.Join(dir, "rpc.crt")
	keyFileName := filepath.Join(dir, "rpc.key")
	require.Nil(t, certificate.MakeSelfSigned("test", certificateFileName, keyFileName, false, nil), "certificate")

	port := rand.Intn(30000) + 30000
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
		Certificate:        certificateFileName,
		PrivateKey:         keyFileName,
	}
	err = rpc.Initialise(&configuration, "2.0", ex, pool)
	require.Nil(t, err, "initialise")
	defer rpc.Finalise()

	conn, err := tls.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port), &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	require.Nil(t, err, "Node.Info")
	assert.Equal(t, "2.0", info.Version, "version")
	assert.Equal(t, uint64(1), info.RPCs, "this connection")
	assert.Equal(t, uint64(1), rpc.ConnectionCount(), "connection count")
}
