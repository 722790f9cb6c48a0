// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ipchaind/fault"
)

// KeyPair - something that can sign extrinsics
type KeyPair interface {
	Account() AccountId
	Sign(message []byte) (Signature, error)
}

type ed25519KeyPair struct {
	account    AccountId
	privateKey ed25519.PrivateKey
}

// NewEd25519 - key pair from a 32 byte seed
func NewEd25519(seed []byte) (KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	kp := &ed25519KeyPair{
		privateKey: privateKey,
	}
	copy(kp.account[:], privateKey.Public().(ed25519.PublicKey))
	return kp, nil
}

func (kp *ed25519KeyPair) Account() AccountId {
	return kp.account
}

func (kp *ed25519KeyPair) Sign(message []byte) (Signature, error) {
	s := Signature{Scheme: Ed25519}
	copy(s.Bytes[:], ed25519.Sign(kp.privateKey, message))
	return s, nil
}

type sr25519KeyPair struct {
	account   AccountId
	secretKey *schnorrkel.SecretKey
}

// NewSr25519 - key pair from a 32 byte mini secret
func NewSr25519(seed []byte) (KeyPair, error) {
	if 32 != len(seed) {
		return nil, fault.InvalidKeyLength
	}
	raw := [32]byte{}
	copy(raw[:], seed)
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	if nil != err {
		return nil, err
	}
	return &sr25519KeyPair{
		account:   AccountId(mini.Public().Encode()),
		secretKey: mini.ExpandEd25519(),
	}, nil
}

func (kp *sr25519KeyPair) Account() AccountId {
	return kp.account
}

func (kp *sr25519KeyPair) Sign(message []byte) (Signature, error) {
	transcript := schnorrkel.NewSigningContext(signingContext, message)
	sig, err := kp.secretKey.Sign(transcript)
	if nil != err {
		return Signature{}, err
	}
	return Signature{
		Scheme: Sr25519,
		Bytes:  sig.Encode(),
	}, nil
}
