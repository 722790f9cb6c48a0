// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/counter"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/mode"
	"github.com/bitmark-inc/ipchaind/reservoir"
	"github.com/bitmark-inc/ipchaind/rpc/ratelimit"
	"github.com/bitmark-inc/ipchaind/rpc/reply"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Chain - the applied blocks
type Chain interface {
	Best() (blockrecord.Header, bool)
	Database() *storage.Database
}

// Pool - the extrinsic pool
type Pool interface {
	Submit(raw []byte) (runtime.Hash, error)
	ReadCounters() reservoir.Counts
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	chain   Chain
	pool    Pool
	counter *counter.Counter
}

// New - the Node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, chain Chain, pool Pool) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		chain:   chain,
		pool:    pool,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain               string           `json:"chain"`
	Mode                string           `json:"mode"`
	Block               BlockInfo        `json:"block"`
	RPCs                uint64           `json:"rpcs"`
	TransactionCounters reservoir.Counts `json:"transactionCounters"`
	Version             string           `json:"version"`
	Uptime              string           `json:"uptime"`
}

// BlockInfo - the highest block held by the node
type BlockInfo struct {
	Height uint64        `json:"height"`
	Hash   *runtime.Hash `json:"hash,omitempty"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, info *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	info.Chain = mode.ChainName()
	info.Mode = mode.String()
	if best, ok := node.chain.Best(); ok {
		h := best.Hash()
		info.Block = BlockInfo{
			Height: best.Number,
			Hash:   &h,
		}
	}
	info.RPCs = node.counter.Uint64()
	info.TransactionCounters = node.pool.ReadCounters()
	info.Version = node.Version
	info.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// SubmitArguments - a hex encoded signed extrinsic
type SubmitArguments struct {
	Extrinsic string `json:"extrinsic"`
}

// SubmitReply - the hash the extrinsic is known by
type SubmitReply struct {
	Hash runtime.Hash `json:"hash"`
}

// Submit - validate an extrinsic and queue it for the next block
func (node *Node) Submit(arguments *SubmitArguments, result *SubmitReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if !mode.Is(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(arguments.Extrinsic, "0x"))
	if nil != err || 0 == len(raw) {
		return fault.InvalidArguments
	}

	hash, err := node.pool.Submit(raw)
	if nil != err {
		node.Log.Debugf("submit: rejected: %s", err)
		return reply.Error(err)
	}
	node.Log.Infof("submit: accepted: %s", hash)

	result.Hash = hash
	return nil
}

// ---

// BlockArguments - the number of a block
type BlockArguments struct {
	Number uint64 `json:"number"`
}

// BlockReply - the header and event log of a block
type BlockReply struct {
	Hash   runtime.Hash          `json:"hash"`
	Header blockrecord.Header    `json:"header"`
	Events []runtime.EventRecord `json:"events"`
}

// Block - fetch an applied block
func (node *Node) Block(arguments *BlockArguments, result *BlockReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	db := node.chain.Database()
	if nil == db {
		return fault.DatabaseIsNotSet
	}
	tx := db.NewTransaction()

	header, err := block.Header(tx, db, arguments.Number)
	if nil != err {
		return reply.Error(err)
	}
	events, err := block.Events(tx, db, arguments.Number)
	if nil != err {
		return reply.Error(err)
	}

	result.Hash = header.Hash()
	result.Header = header
	result.Events = events
	return nil
}
