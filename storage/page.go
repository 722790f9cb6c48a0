// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/ipchaind/fault"
)

// Page - visit up to count records of a prefix in key order, after
// skipping the first start records
//
// returns the number of records visited
func Page(tx Transaction, p *PoolHandle, prefix []byte, start int, count int, fn func(key []byte, value []byte)) (int, error) {
	if start < 0 {
		return 0, fault.InvalidCursor
	}
	if count <= 0 {
		return 0, fault.InvalidCount
	}
	skipped := 0
	visited := 0
	tx.Range(p, prefix, func(key []byte, value []byte) bool {
		if skipped < start {
			skipped += 1
			return true
		}
		fn(key, value)
		visited += 1
		return visited < count
	})
	return visited, nil
}
