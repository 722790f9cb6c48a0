// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// keys of the meta pool
var (
	bestKey    = []byte("best")
	genesisKey = []byte("genesis")
)

// Store - record an applied block header and its events
func Store(tx storage.Transaction, db *storage.Database, header blockrecord.Header, events []runtime.EventRecord) {
	n := storage.Uint64Key(header.Number)
	hash := header.Hash()

	tx.Put(db.BlockHeaders, n, codec.Marshal(header))
	tx.Put(db.BlockNumbers, hash[:], n)
	tx.Put(db.Events, n, runtime.EncodeRecords(events))
	tx.Put(db.Meta, bestKey, n)
	if 0 == header.Number {
		tx.Put(db.Meta, genesisKey, hash[:])
	}
}

// HasGenesis - true once block 0 is stored
func HasGenesis(db *storage.Database) bool {
	return db.Meta.Has(genesisKey)
}

// GenesisHash - hash of block 0
func GenesisHash(tx storage.Transaction, db *storage.Database) (runtime.Hash, bool) {
	h := runtime.Hash{}
	buffer := tx.Get(db.Meta, genesisKey)
	if nil == buffer {
		return h, false
	}
	copy(h[:], buffer)
	return h, true
}

// Best - the latest applied header
func Best(tx storage.Transaction, db *storage.Database) (blockrecord.Header, bool) {
	n, found := storage.GetN(tx, db.Meta, bestKey)
	if !found {
		return blockrecord.Header{}, false
	}
	h, err := Header(tx, db, n)
	if nil != err {
		logger.Panicf("block: best: %d has no header: %s", n, err)
	}
	return h, true
}

// Header - fetch the header of a block number
func Header(tx storage.Transaction, db *storage.Database, number uint64) (blockrecord.Header, error) {
	h := blockrecord.Header{}
	buffer := tx.Get(db.BlockHeaders, storage.Uint64Key(number))
	if nil == buffer {
		return h, fault.BlockNotFound
	}
	err := codec.Unmarshal(buffer, &h)
	if nil != err {
		logger.Panicf("block: header: %d is corrupt: %s", number, err)
	}
	return h, nil
}

// HashForBlock - hash of a stored block
func HashForBlock(tx storage.Transaction, db *storage.Database, number uint64) (runtime.Hash, error) {
	h, err := Header(tx, db, number)
	if nil != err {
		return runtime.Hash{}, err
	}
	return h.Hash(), nil
}

// NumberForHash - block number of a stored block hash
func NumberForHash(tx storage.Transaction, db *storage.Database, hash runtime.Hash) (uint64, error) {
	n, found := storage.GetN(tx, db.BlockNumbers, hash[:])
	if !found {
		return 0, fault.BlockNotFound
	}
	return n, nil
}

// Events - the event log of a block
func Events(tx storage.Transaction, db *storage.Database, number uint64) ([]runtime.EventRecord, error) {
	buffer := tx.Get(db.Events, storage.Uint64Key(number))
	if nil == buffer {
		return nil, fault.BlockNotFound
	}
	return runtime.DecodeRecords(buffer)
}
