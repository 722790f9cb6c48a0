// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"

	"github.com/bitmark-inc/ipchaind/fault"
)

// maximum length accepted for any length prefixed item
const maximumLength = 16 * 1024 * 1024

// Encodable - a value that can write itself to an encoder
type Encodable interface {
	Encode(*Encoder)
}

// Decodable - a value that can read itself from a decoder
type Decodable interface {
	Decode(*Decoder)
}

// Marshal - encode a value to a new byte slice
func Marshal(v Encodable) []byte {
	e := NewEncoder()
	v.Encode(e)
	return e.Bytes()
}

// Unmarshal - decode a value which must consume the whole buffer
func Unmarshal(buffer []byte, v Decodable) error {
	d := NewDecoder(buffer)
	v.Decode(d)
	return d.Finish()
}

// Encoder - append only byte buffer
type Encoder struct {
	buffer []byte
}

// NewEncoder - create an empty encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buffer: make([]byte, 0, 64),
	}
}

// Bytes - the encoded data
func (e *Encoder) Bytes() []byte {
	return e.buffer
}

func (e *Encoder) Uint8(v uint8) {
	e.buffer = append(e.buffer, v)
}

func (e *Encoder) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buffer = append(e.buffer, b[:]...)
}

func (e *Encoder) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buffer = append(e.buffer, b[:]...)
}

func (e *Encoder) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buffer = append(e.buffer, b[:]...)
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.buffer = append(e.buffer, 1)
	} else {
		e.buffer = append(e.buffer, 0)
	}
}

// Length - a Varint64 count or byte length
func (e *Encoder) Length(n int) {
	e.buffer = AppendVarint64(e.buffer, uint64(n))
}

// Fixed - raw bytes without a length, for fixed size arrays
func (e *Encoder) Fixed(b []byte) {
	e.buffer = append(e.buffer, b...)
}

// ByteSlice - length prefixed bytes
func (e *Encoder) ByteSlice(b []byte) {
	e.Length(len(b))
	e.buffer = append(e.buffer, b...)
}

func (e *Encoder) String(s string) {
	e.Length(len(s))
	e.buffer = append(e.buffer, s...)
}

// Option - write the presence flag, caller writes the value when true
func (e *Encoder) Option(present bool) bool {
	e.Bool(present)
	return present
}

// Decoder - reads encoded data, the first error is sticky
type Decoder struct {
	buffer []byte
	offset int
	err    error
}

// NewDecoder - decode from a byte slice
func NewDecoder(buffer []byte) *Decoder {
	return &Decoder{
		buffer: buffer,
	}
}

// Err - the first error encountered
func (d *Decoder) Err() error {
	return d.err
}

// Fail - record an error found by a caller, e.g. a bad enumeration value
func (d *Decoder) Fail(err error) {
	if nil == d.err {
		d.err = err
	}
}

// Remaining - count of bytes not yet consumed
func (d *Decoder) Remaining() int {
	return len(d.buffer) - d.offset
}

// Finish - error if decode failed or if any data is left over
func (d *Decoder) Finish() error {
	if nil != d.err {
		return d.err
	}
	if d.offset != len(d.buffer) {
		return fault.TrailingBytes
	}
	return nil
}

func (d *Decoder) take(n int) []byte {
	if nil != d.err {
		return nil
	}
	if n < 0 || d.Remaining() < n {
		d.err = fault.Truncated
		return nil
	}
	b := d.buffer[d.offset : d.offset+n]
	d.offset += n
	return b
}

func (d *Decoder) Uint8() uint8 {
	b := d.take(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (d *Decoder) Uint16() uint16 {
	b := d.take(2)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) Uint32() uint32 {
	b := d.take(4)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *Decoder) Uint64() uint64 {
	b := d.take(8)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) Bool() bool {
	switch d.Uint8() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(fault.UnknownEnumValue)
		return false
	}
}

// Length - read a Varint64 length and check it against the remaining data
//
// each item occupies at least one byte so any count larger than the
// remaining data is corrupt
func (d *Decoder) Length() int {
	if nil != d.err {
		return 0
	}
	value, n := ReadVarint64(d.buffer[d.offset:])
	if 0 == n {
		d.err = fault.Truncated
		return 0
	}
	d.offset += n
	if value > maximumLength || value > uint64(d.Remaining()) {
		d.err = fault.Truncated
		return 0
	}
	return int(value)
}

// Fixed - copy exactly len(into) bytes
func (d *Decoder) Fixed(into []byte) {
	b := d.take(len(into))
	if nil != b {
		copy(into, b)
	}
}

func (d *Decoder) ByteSlice() []byte {
	n := d.Length()
	b := d.take(n)
	if nil == b {
		return nil
	}
	result := make([]byte, n)
	copy(result, b)
	return result
}

func (d *Decoder) String() string {
	n := d.Length()
	b := d.take(n)
	return string(b)
}

// Option - read the presence flag
func (d *Decoder) Option() bool {
	return d.Bool()
}
