// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a bounded gauge of live connections, safe for concurrent use
//
// a zero maximum means unbounded
type Counter struct {
	value   uint64
	maximum uint64
}

// New - create a counter with an upper bound
func New(maximum uint64) *Counter {
	return &Counter{
		maximum: maximum,
	}
}

// Acquire - take one slot, false if the counter is already at its maximum
func (c *Counter) Acquire() bool {
	for {
		v := atomic.LoadUint64(&c.value)
		if 0 != c.maximum && v >= c.maximum {
			return false
		}
		if atomic.CompareAndSwapUint64(&c.value, v, v+1) {
			return true
		}
	}
}

// Release - return one slot, never goes below zero
func (c *Counter) Release() {
	for {
		v := atomic.LoadUint64(&c.value)
		if 0 == v {
			return
		}
		if atomic.CompareAndSwapUint64(&c.value, v, v-1) {
			return
		}
	}
}

// Uint64 - current number of slots in use
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Maximum - the bound given to New
func (c *Counter) Maximum() uint64 {
	return c.maximum
}

// IsZero - check if no slot is in use
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
