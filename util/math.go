// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/bits"
)

// AddUint64 - sum and false on overflow
func AddUint64(a uint64, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, 0 == carry
}

// SubUint64 - difference and false on underflow
func SubUint64(a uint64, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, 0 == borrow
}

// MulDivFloor - floor(a * b / c) with a 128 bit intermediate
//
// false if c is zero or the result does not fit in 64 bits
func MulDivFloor(a uint64, b uint64, c uint64) (uint64, bool) {
	if 0 == c {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, false
	}
	quotient, _ := bits.Div64(hi, lo, c)
	return quotient, true
}

// MinUint64 - smaller of two values
func MinUint64(a uint64, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
