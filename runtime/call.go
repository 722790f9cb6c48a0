// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/ipchaind/codec"
)

// Call - a module function and its encoded arguments
type Call struct {
	Module   uint8  `json:"module"`
	Function uint8  `json:"function"`
	Args     []byte `json:"args"`
}

// NewCall - encode arguments into a call
func NewCall(module uint8, function uint8, args codec.Encodable) Call {
	c := Call{
		Module:   module,
		Function: function,
	}
	if nil != args {
		c.Args = codec.Marshal(args)
	}
	return c
}

func (c Call) Encode(e *codec.Encoder) {
	e.Uint8(c.Module)
	e.Uint8(c.Function)
	e.ByteSlice(c.Args)
}

func (c *Call) Decode(d *codec.Decoder) {
	c.Module = d.Uint8()
	c.Function = d.Uint8()
	c.Args = d.ByteSlice()
}

// Hash - blake2b-256 of the encoded call
func (c Call) Hash() Hash {
	return HashOf(codec.Marshal(c))
}

// Is - check module and function
func (c Call) Is(module uint8, function uint8) bool {
	return c.Module == module && c.Function == function
}

// EncodeCalls - Varint64 count followed by the calls
func EncodeCalls(e *codec.Encoder, calls []Call) {
	e.Length(len(calls))
	for _, c := range calls {
		c.Encode(e)
	}
}

// DecodeCalls - inverse of EncodeCalls
func DecodeCalls(d *codec.Decoder) []Call {
	n := d.Length()
	if nil != d.Err() {
		return nil
	}
	calls := make([]Call, n)
	for i := range calls {
		calls[i].Decode(d)
	}
	return calls
}
