// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - compact deterministic binary encoding of chain data
//
// Encoding rules:
//
//   uint8/16/32/64  = little endian fixed width
//   bool            = 0x00 | 0x01
//   length          = Varint64
//   bytes, string   = length ++ data
//   fixed array     = data (no length)
//   sequence        = length ++ (item)*
//   option          = 0x00 | 0x01 ++ item
//   enumeration     = 1 byte discriminant ++ variant fields
//
// Varint64 layout (least significant group first):
//
//   byte 1..8: ext | 7 data bits   (ext set if more bytes follow)
//   byte 9:    8 data bits
package codec
