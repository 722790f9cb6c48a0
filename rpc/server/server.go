// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/counter"
	"github.com/bitmark-inc/ipchaind/rpc/crowdfunds"
	"github.com/bitmark-inc/ipchaind/rpc/daos"
	"github.com/bitmark-inc/ipchaind/rpc/fnfts"
	"github.com/bitmark-inc/ipchaind/rpc/node"
	"github.com/bitmark-inc/ipchaind/rpc/proposals"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, chain node.Chain, pool node.Pool) *rpc.Server {

	start := time.Now().UTC()
	db := chain.Database()

	server := rpc.NewServer()

	_ = server.Register(node.New(log, start, version, rpcCount, chain, pool))
	_ = server.Register(daos.New(log, db))
	_ = server.Register(fnfts.New(log, db))
	_ = server.Register(proposals.New(log, db))
	_ = server.Register(crowdfunds.New(log, db))

	return server
}
