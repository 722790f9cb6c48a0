// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/json"
)

// Wide - a 128 bit unsigned value
//
// JSON form is the array [hi, lo] so values survive JavaScript clients,
// binary form is 16 bytes little endian
type Wide struct {
	Hi uint64
	Lo uint64
}

// WideFromUint64 - widen a 64 bit value
func WideFromUint64(n uint64) Wide {
	return Wide{Lo: n}
}

// IsUint64 - true if the value fits in 64 bits
func (w Wide) IsUint64() bool {
	return 0 == w.Hi
}

// Cmp - -1, 0 or +1 as w is below, equal to or above o
func (w Wide) Cmp(o Wide) int {
	switch {
	case w.Hi < o.Hi:
		return -1
	case w.Hi > o.Hi:
		return 1
	case w.Lo < o.Lo:
		return -1
	case w.Lo > o.Lo:
		return 1
	}
	return 0
}

func (w Wide) Encode(e *Encoder) {
	e.Uint64(w.Lo)
	e.Uint64(w.Hi)
}

func (w *Wide) Decode(d *Decoder) {
	w.Lo = d.Uint64()
	w.Hi = d.Uint64()
}

// MarshalJSON - big end first
func (w Wide) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{w.Hi, w.Lo})
}

// UnmarshalJSON - big end first
func (w *Wide) UnmarshalJSON(s []byte) error {
	halves := [2]uint64{}
	err := json.Unmarshal(s, &halves)
	if nil != err {
		return err
	}
	w.Hi = halves[0]
	w.Lo = halves[1]
	return nil
}
