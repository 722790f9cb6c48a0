// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// Scheme - signature algorithm
type Scheme uint8

// enumeration of supported signature schemes
const (
	Ed25519 Scheme = iota
	Sr25519 Scheme = iota
	// end of list (one greater than last item)
	schemeLimit = iota
)

// SignatureSize - both schemes produce 64 bytes
const SignatureSize = 64

// signing context for sr25519
var signingContext = []byte("substrate")

// Signature - a scheme tagged signature
type Signature struct {
	Scheme Scheme
	Bytes  [SignatureSize]byte
}

// String - for debugging
func (s Signature) String() string {
	return hex.EncodeToString(s.Bytes[:])
}

func (s Signature) Encode(e *codec.Encoder) {
	e.Uint8(uint8(s.Scheme))
	e.Fixed(s.Bytes[:])
}

func (s *Signature) Decode(d *codec.Decoder) {
	s.Scheme = Scheme(d.Uint8())
	if s.Scheme >= schemeLimit {
		d.Fail(fault.UnknownEnumValue)
		return
	}
	d.Fixed(s.Bytes[:])
}

// Verify - check a signature of message by the account as public key
func Verify(signer AccountId, message []byte, signature Signature) error {
	switch signature.Scheme {

	case Ed25519:
		if !ed25519.Verify(ed25519.PublicKey(signer[:]), message, signature.Bytes[:]) {
			return fault.BadProof
		}
		return nil

	case Sr25519:
		publicKey := &schnorrkel.PublicKey{}
		err := publicKey.Decode([32]byte(signer))
		if nil != err {
			return fault.BadProof
		}
		sig := &schnorrkel.Signature{}
		err = sig.Decode(signature.Bytes)
		if nil != err {
			return fault.BadProof
		}
		transcript := schnorrkel.NewSigningContext(signingContext, message)
		ok, err := publicKey.Verify(sig, transcript)
		if nil != err || !ok {
			return fault.BadProof
		}
		return nil

	default:
		return fault.InvalidSignatureScheme
	}
}
