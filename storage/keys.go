// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Key - concatenate key parts
func Key(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Uint32Key - big endian so numeric order is key order
func Uint32Key(n uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

// Uint64Key - big endian so numeric order is key order
func Uint64Key(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// GetN - read a record as a big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 bytes in the record
func GetN(tx Transaction, p *PoolHandle, key []byte) (uint64, bool) {
	buffer := tx.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN: %s truncated record for: %x: %x", p.name, key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// PutN - store a big endian uint64
func PutN(tx Transaction, p *PoolHandle, key []byte, value uint64) {
	tx.Put(p, key, Uint64Key(value))
}

// NextCount - allocate the next value of a named counter, starting at zero
func (d *Database) NextCount(tx Transaction, name string) uint64 {
	n, _ := GetN(tx, d.Counters, []byte(name))
	PutN(tx, d.Counters, []byte(name), n+1)
	return n
}
