// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/merkle"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// currently supported block version
const (
	Version        = 1
	MinimumVersion = 1
)

// maximum extrinsics in a block
const (
	MaximumExtrinsics = 10000
)

// Header - the fixed part of a block
type Header struct {
	Version        uint16       `json:"version"`
	Number         uint64       `json:"number"`
	ParentHash     runtime.Hash `json:"parentHash"`
	ExtrinsicsRoot runtime.Hash `json:"extrinsicsRoot"`
	Timestamp      uint64       `json:"timestamp"`
	ExtrinsicCount uint32       `json:"extrinsicCount"`
}

func (h Header) Encode(e *codec.Encoder) {
	e.Uint16(h.Version)
	e.Uint64(h.Number)
	h.ParentHash.Encode(e)
	h.ExtrinsicsRoot.Encode(e)
	e.Uint64(h.Timestamp)
	e.Uint32(h.ExtrinsicCount)
}

func (h *Header) Decode(d *codec.Decoder) {
	h.Version = d.Uint16()
	h.Number = d.Uint64()
	h.ParentHash.Decode(d)
	h.ExtrinsicsRoot.Decode(d)
	h.Timestamp = d.Uint64()
	h.ExtrinsicCount = d.Uint32()
}

// Hash - digest of the encoded header
func (h Header) Hash() runtime.Hash {
	return runtime.HashOf(codec.Marshal(h))
}

// Block - header and the encoded extrinsics in order
type Block struct {
	Header     Header
	Extrinsics [][]byte
}

// New - assemble a block, computing the extrinsics root
func New(number uint64, parent runtime.Hash, timestamp uint64, extrinsics [][]byte) *Block {
	return &Block{
		Header: Header{
			Version:        Version,
			Number:         number,
			ParentHash:     parent,
			ExtrinsicsRoot: Root(extrinsics),
			Timestamp:      timestamp,
			ExtrinsicCount: uint32(len(extrinsics)),
		},
		Extrinsics: extrinsics,
	}
}

// Root - merkle root of the extrinsic hashes
func Root(extrinsics [][]byte) runtime.Hash {
	ids := make([]runtime.Hash, len(extrinsics))
	for i, x := range extrinsics {
		ids[i] = runtime.HashOf(x)
	}
	return merkle.Root(ids)
}

func (b Block) Encode(e *codec.Encoder) {
	b.Header.Encode(e)
	e.Length(len(b.Extrinsics))
	for _, x := range b.Extrinsics {
		e.ByteSlice(x)
	}
}

func (b *Block) Decode(d *codec.Decoder) {
	b.Header.Decode(d)
	n := d.Length()
	b.Extrinsics = make([][]byte, 0, n)
	for i := 0; i < n && nil == d.Err(); i += 1 {
		b.Extrinsics = append(b.Extrinsics, d.ByteSlice())
	}
}

// Validate - internal consistency of a block
func (b *Block) Validate() error {
	h := b.Header
	if h.Version < MinimumVersion || h.Version > Version {
		return fault.InvalidBlockVersion
	}
	if len(b.Extrinsics) > MaximumExtrinsics || int(h.ExtrinsicCount) != len(b.Extrinsics) {
		return fault.InvalidCount
	}
	if Root(b.Extrinsics) != h.ExtrinsicsRoot {
		return fault.InvalidMerkleRoot
	}
	return nil
}
