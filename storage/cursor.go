// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/logger"
)

// FetchCursor - cursor structure over committed data
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// NewPrefixCursor - initialise a cursor restricted to keys with a prefix
func (p *PoolHandle) NewPrefixCursor(prefix []byte) *FetchCursor {
	r := ldb_util.BytesPrefix(p.prefixKey(prefix))
	return &FetchCursor{
		pool:     p,
		maxRange: *r,
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Skip - step over a number of elements
func (cursor *FetchCursor) Skip(count int) error {
	for count > 0 {
		n := count
		if n > 1000 {
			n = 1000
		}
		elements, err := cursor.Fetch(n)
		if nil != err {
			return err
		}
		if len(elements) < n {
			return nil
		}
		count -= n
	}
	return nil
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	d := cursor.pool.database
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.DatabaseIsNotSet
	}

	iter := d.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()
	logger.PanicIfError("cursor.Fetch", err)

	if n := len(results); n > 0 {
		// next start is the successor of the last key
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, nil
}
