// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - the pending writes of a block
//
// a stack of layers over the committed database, each savepoint is a
// new layer so a failed call can discard exactly its own writes
type Transaction interface {
	Begin()
	Commit() error
	Abort() error
	Depth() int

	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Range(*PoolHandle, []byte, func(key []byte, value []byte) bool)

	Flush() error
	Discard()
}

// a single buffered write
type write struct {
	deleted bool
	value   []byte
}

// writes of one savepoint, keys kept in FIFO order
type layer struct {
	writes map[string]write
	order  []string
}

func newLayer() *layer {
	return &layer{
		writes: make(map[string]write),
	}
}

func (l *layer) set(key string, w write) {
	if _, ok := l.writes[key]; !ok {
		l.order = append(l.order, key)
	}
	l.writes[key] = w
}

type transaction struct {
	database *Database
	layers   []*layer
}

// NewTransaction - start a write set over the committed state
func (d *Database) NewTransaction() Transaction {
	return &transaction{
		database: d,
		layers:   []*layer{newLayer()},
	}
}

// Begin - push a savepoint
func (t *transaction) Begin() {
	t.layers = append(t.layers, newLayer())
}

// Commit - fold the newest savepoint into its parent
func (t *transaction) Commit() error {
	n := len(t.layers)
	if n < 2 {
		return fault.TransactionNotStarted
	}
	top := t.layers[n-1]
	parent := t.layers[n-2]
	for _, key := range top.order {
		parent.set(key, top.writes[key])
	}
	t.layers = t.layers[:n-1]
	return nil
}

// Abort - discard the newest savepoint
func (t *transaction) Abort() error {
	n := len(t.layers)
	if n < 2 {
		return fault.TransactionNotStarted
	}
	t.layers = t.layers[:n-1]
	return nil
}

// Depth - number of open savepoints
func (t *transaction) Depth() int {
	return len(t.layers) - 1
}

func (t *transaction) top() *layer {
	return t.layers[len(t.layers)-1]
}

func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	t.top().set(string(p.prefixKey(key)), write{value: v})
}

func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.top().set(string(p.prefixKey(key)), write{deleted: true})
}

// Get - newest layer first then the committed database
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	prefixedKey := p.prefixKey(key)
	k := string(prefixedKey)
	for i := len(t.layers) - 1; i >= 0; i -= 1 {
		if w, ok := t.layers[i].writes[k]; ok {
			if w.deleted {
				return nil
			}
			return w.value
		}
	}
	return t.database.get(prefixedKey)
}

func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	return nil != t.Get(p, key)
}

// Range - iterate the merged view of all keys starting with prefix in
// key order, stop early if fn returns false
//
// the key passed to fn has the pool prefix removed
func (t *transaction) Range(p *PoolHandle, prefix []byte, fn func(key []byte, value []byte) bool) {
	start := p.prefixKey(prefix)

	// resolve the pending writes, newest layer wins
	pending := make(map[string]write)
	for i := len(t.layers) - 1; i >= 0; i -= 1 {
		for k, w := range t.layers[i].writes {
			if !bytes.HasPrefix([]byte(k), start) {
				continue
			}
			if _, ok := pending[k]; !ok {
				pending[k] = w
			}
		}
	}
	keys := make([]string, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, e := range t.database.merge(start, keys, pending) {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// merge the stored keys with the pending ones under the read lock, the
// callback of Range runs after the lock is released so it may read
func (d *Database) merge(start []byte, keys []string, pending map[string]write) []Element {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil
	}
	iter := d.db.NewIterator(ldb_util.BytesPrefix(start), nil)
	defer iter.Release()

	result := make([]Element, 0, len(keys))
	emit := func(key []byte, value []byte) {
		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])
		dataValue := make([]byte, len(value))
		copy(dataValue, value)
		result = append(result, Element{Key: dataKey, Value: dataValue})
	}

	i := 0
	more := iter.Next()
	for more || i < len(keys) {
		if more && (i >= len(keys) || bytes.Compare(iter.Key(), []byte(keys[i])) < 0) {
			emit(iter.Key(), iter.Value())
			more = iter.Next()
			continue
		}

		// pending key is next, it replaces any equal stored key
		k := []byte(keys[i])
		if more && bytes.Equal(iter.Key(), k) {
			more = iter.Next()
		}
		w := pending[keys[i]]
		i += 1
		if !w.deleted {
			emit(k, w.value)
		}
	}
	logger.PanicIfError("transaction.Range", iter.Error())
	return result
}

// Flush - write the base layer to leveldb as one batch
//
// all savepoints must have been closed
func (t *transaction) Flush() error {
	if len(t.layers) != 1 {
		return fault.TransactionInPlace
	}
	d := t.database
	if d.readOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	base := t.layers[0]
	batch := new(leveldb.Batch)
	for _, k := range base.order {
		w := base.writes[k]
		if w.deleted {
			batch.Delete([]byte(k))
		} else {
			batch.Put([]byte(k), w.value)
		}
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.DatabaseIsNotSet
	}
	err := d.db.Write(batch, nil)
	if nil != err {
		d.cache.Clear()
		return err
	}
	for _, k := range base.order {
		w := base.writes[k]
		if w.deleted {
			d.cache.SetDeleted(k)
		} else {
			d.cache.Set(k, w.value)
		}
	}
	t.layers = []*layer{newLayer()}
	return nil
}

// Discard - drop every pending write
func (t *transaction) Discard() {
	t.layers = []*layer{newLayer()}
}
