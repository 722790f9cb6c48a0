// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

type record struct {
	a uint8
	b uint16
	c uint32
	d uint64
	e bool
	f []byte
	g string
	h *uint32
}

func (r record) Encode(e *codec.Encoder) {
	e.Uint8(r.a)
	e.Uint16(r.b)
	e.Uint32(r.c)
	e.Uint64(r.d)
	e.Bool(r.e)
	e.ByteSlice(r.f)
	e.String(r.g)
	if e.Option(nil != r.h) {
		e.Uint32(*r.h)
	}
}

func (r *record) Decode(d *codec.Decoder) {
	r.a = d.Uint8()
	r.b = d.Uint16()
	r.c = d.Uint32()
	r.d = d.Uint64()
	r.e = d.Bool()
	r.f = d.ByteSlice()
	r.g = d.String()
	if d.Option() {
		h := d.Uint32()
		r.h = &h
	}
}

func TestLittleEndian(t *testing.T) {
	e := codec.NewEncoder()
	e.Uint16(0x0102)
	e.Uint32(0x03040506)
	e.Uint64(0x0708090a0b0c0d0e)
	expected := []byte{
		0x02, 0x01,
		0x06, 0x05, 0x04, 0x03,
		0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08, 0x07,
	}
	assert.Equal(t, expected, e.Bytes(), "byte order")
}

func TestRecord(t *testing.T) {
	h := uint32(99)
	r := record{
		a: 1,
		b: 500,
		c: 70000,
		d: 1 << 40,
		e: true,
		f: []byte{1, 2, 3},
		g: "text",
		h: &h,
	}
	buffer := codec.Marshal(r)

	decoded := record{}
	err := codec.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, r.f, decoded.f, "bytes")
	assert.Equal(t, r.g, decoded.g, "string")
	assert.Equal(t, uint32(99), *decoded.h, "option")
	assert.Equal(t, r.d, decoded.d, "uint64")

	err = codec.Unmarshal(append(buffer, 0x00), &decoded)
	assert.Equal(t, fault.TrailingBytes, err, "trailing")

	for i := 0; i < len(buffer); i += 1 {
		err = codec.Unmarshal(buffer[:i], &decoded)
		assert.Equal(t, fault.Truncated, err, "truncated at: %d", i)
	}
}

func TestBadBool(t *testing.T) {
	d := codec.NewDecoder([]byte{0x02})
	_ = d.Bool()
	assert.Equal(t, fault.UnknownEnumValue, d.Err(), "bool must be 0 or 1")
}

func TestStickyError(t *testing.T) {
	d := codec.NewDecoder([]byte{0x01})
	_ = d.Uint32()
	assert.Equal(t, fault.Truncated, d.Err(), "first error")
	d.Fail(fault.UnknownEnumValue)
	_ = d.Uint8()
	assert.Equal(t, fault.Truncated, d.Err(), "error is sticky")
}

func TestHugeLength(t *testing.T) {
	buffer := codec.AppendVarint64(nil, 1<<40)
	d := codec.NewDecoder(append(buffer, 1, 2, 3))
	b := d.ByteSlice()
	assert.Nil(t, b, "no allocation")
	assert.Equal(t, fault.Truncated, d.Err(), "length beyond data")
}

func TestVarint64(t *testing.T) {
	values := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0xffffffffffffffff, bytes.Repeat([]byte{0xff}, 9)},
	}

	for i, item := range values {
		encoded := codec.AppendVarint64(nil, item.value)
		assert.Equal(t, item.encoded, encoded, "%d: encode", i)

		value, n := codec.ReadVarint64(encoded)
		assert.Equal(t, item.value, value, "%d: decode", i)
		assert.Equal(t, len(encoded), n, "%d: length", i)
	}

	_, n := codec.ReadVarint64([]byte{0x80, 0x80})
	assert.Equal(t, 0, n, "truncated")
}

func TestWide(t *testing.T) {
	w := codec.Wide{Hi: 1, Lo: 2}
	buffer, err := json.Marshal(w)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, "[1,2]", string(buffer), "json form")

	var back codec.Wide
	err = json.Unmarshal([]byte("[3,4]"), &back)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, codec.Wide{Hi: 3, Lo: 4}, back, "value")

	assert.Equal(t, codec.Wide{Lo: 7}, codec.WideFromUint64(7), "from uint64")

	e := codec.NewEncoder()
	w.Encode(e)
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, e.Bytes(), "binary form is little endian")

	assert.Equal(t, 0, w.Cmp(codec.Wide{Hi: 1, Lo: 2}), "equal")
	assert.Equal(t, -1, codec.WideFromUint64(99).Cmp(w), "high half dominates")
	assert.Equal(t, 1, w.Cmp(codec.Wide{Hi: 1, Lo: 1}), "low half")
}
