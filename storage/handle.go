// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - a single prefixed pool of the database
type PoolHandle struct {
	name     string
	prefix   byte
	limit    []byte
	database *Database
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - the field name of the pool
func (p *PoolHandle) Name() string {
	return p.name
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a committed value for a given key
//
// returns nil if not found
func (p *PoolHandle) Get(key []byte) []byte {
	return p.database.get(p.prefixKey(key))
}

// Has - check if a committed key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}

// committed read through the cache
func (d *Database) get(prefixedKey []byte) []byte {
	d.RLock()
	defer d.RUnlock()

	if value, deleted, found := d.cache.Get(string(prefixedKey)); found {
		if deleted {
			return nil
		}
		return value
	}

	if nil == d.db {
		return nil
	}
	value, err := d.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	d.cache.Set(string(prefixedKey), value)
	return value
}
