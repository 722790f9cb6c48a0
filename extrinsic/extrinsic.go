// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package extrinsic

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// envelope version bytes
const (
	formatVersion = 4
	signedBit     = 0x80
)

// PortalTagSize - bytes in the portal id carried by the portal extension
const PortalTagSize = 20

// PortalTag - the tenant an extrinsic is attributed to
type PortalTag [PortalTagSize]byte

// Era - mortality of a signed extrinsic
//
// valid from Birth for Period blocks, Period 0 is immortal
type Era struct {
	Birth  uint64 `json:"birth"`
	Period uint64 `json:"period"`
}

// IsImmortal - never expires
func (era Era) IsImmortal() bool {
	return 0 == era.Period
}

// Extra - the payload of the signed extensions, in canonical order
type Extra struct {
	Era    Era        `json:"era"`
	Nonce  uint64     `json:"nonce"`
	Tip    uint64     `json:"tip"`
	Portal *PortalTag `json:"portal,omitempty"`
}

func (x Extra) Encode(e *codec.Encoder) {
	e.Uint64(x.Era.Birth)
	e.Uint64(x.Era.Period)
	e.Uint64(x.Nonce)
	e.Uint64(x.Tip)
	if e.Option(nil != x.Portal) {
		e.Fixed(x.Portal[:])
	}
}

func (x *Extra) Decode(d *codec.Decoder) {
	x.Era.Birth = d.Uint64()
	x.Era.Period = d.Uint64()
	x.Nonce = d.Uint64()
	x.Tip = d.Uint64()
	if d.Option() {
		x.Portal = &PortalTag{}
		d.Fixed(x.Portal[:])
	}
}

// Signature - the signed part of the envelope
type Signature struct {
	Signer    account.AccountId `json:"signer"`
	Signature account.Signature `json:"signature"`
	Extra     Extra             `json:"extra"`
}

// Extrinsic - envelope of a call submitted to the chain
type Extrinsic struct {
	Signature *Signature   `json:"signature,omitempty"`
	Call      runtime.Call `json:"call"`
}

// IsSigned - true if there is a signature
func (x *Extrinsic) IsSigned() bool {
	return nil != x.Signature
}

func (x Extrinsic) Encode(e *codec.Encoder) {
	if nil != x.Signature {
		e.Uint8(formatVersion | signedBit)
		x.Signature.Signer.Encode(e)
		x.Signature.Signature.Encode(e)
		x.Signature.Extra.Encode(e)
	} else {
		e.Uint8(formatVersion)
	}
	x.Call.Encode(e)
}

func (x *Extrinsic) Decode(d *codec.Decoder) {
	version := d.Uint8()
	if nil != d.Err() {
		return
	}
	switch version {
	case formatVersion:
		x.Signature = nil
	case formatVersion | signedBit:
		x.Signature = &Signature{}
		x.Signature.Signer.Decode(d)
		x.Signature.Signature.Decode(d)
		x.Signature.Extra.Decode(d)
	default:
		d.Fail(fault.UnknownEnumValue)
		return
	}
	x.Call.Decode(d)
}

// Parse - decode a complete extrinsic
func Parse(buffer []byte) (*Extrinsic, error) {
	x := &Extrinsic{}
	err := codec.Unmarshal(buffer, x)
	if nil != err {
		return nil, err
	}
	return x, nil
}

// Bytes - the encoded form
func (x *Extrinsic) Bytes() []byte {
	return codec.Marshal(x)
}

// Hash - blake2b-256 of the full encoding
func (x *Extrinsic) Hash() runtime.Hash {
	return runtime.HashOf(x.Bytes())
}

// SigningPayload - the bytes covered by the signature
//
// length prefixed concatenation of the call, the extra and the
// additional signed data of every extension in order
func SigningPayload(call runtime.Call, extra Extra, additional [][]byte) []byte {
	e := codec.NewEncoder()
	e.ByteSlice(codec.Marshal(call))
	e.ByteSlice(codec.Marshal(extra))
	for _, a := range additional {
		e.ByteSlice(a)
	}
	return e.Bytes()
}

// NewUnsigned - an extrinsic without signature
func NewUnsigned(call runtime.Call) *Extrinsic {
	return &Extrinsic{
		Call: call,
	}
}

// NewSigned - sign a call with the additional data of the pipeline
func NewSigned(kp account.KeyPair, call runtime.Call, extra Extra, additional [][]byte) (*Extrinsic, error) {
	sig, err := kp.Sign(SigningPayload(call, extra, additional))
	if nil != err {
		return nil, err
	}
	return &Extrinsic{
		Signature: &Signature{
			Signer:    kp.Account(),
			Signature: sig,
			Extra:     extra,
		},
		Call: call,
	}, nil
}
