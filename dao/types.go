// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// IdSize - bytes in a DAO id
const IdSize = 20

// MetadataSize - bytes in the metadata of a DAO
const MetadataSize = 32

// DaoId - a human chosen label padded with NUL
type DaoId [IdSize]byte

// Metadata - opaque 32 bytes, usually a content hash
type Metadata [MetadataSize]byte

// IdFromString - pad a label, false if the label is too long
func IdFromString(label string) (DaoId, bool) {
	id := DaoId{}
	if len(label) > IdSize || 0 == len(label) {
		return id, false
	}
	copy(id[:], label)
	return id, true
}

// String - the label if printable, otherwise hex with 0x
func (id DaoId) String() string {
	label := bytes.TrimRight(id[:], "\x00")
	for _, c := range label {
		if c < 0x20 || c > 0x7e {
			return "0x" + hex.EncodeToString(id[:])
		}
	}
	return string(label)
}

// MarshalText - as String
func (id DaoId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - label or 0x hex
func (id *DaoId) UnmarshalText(s []byte) error {
	text := string(s)
	if strings.HasPrefix(text, "0x") {
		b, err := hex.DecodeString(text[2:])
		if nil != err {
			return err
		}
		if len(b) != IdSize {
			return fault.InvalidKeyLength
		}
		copy(id[:], b)
		return nil
	}
	parsed, ok := IdFromString(text)
	if !ok {
		return fault.InvalidKeyLength
	}
	*id = parsed
	return nil
}

// MarshalText - hex encoded
func (m Metadata) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(m[:])), nil
}

// UnmarshalText - exactly 32 hex encoded bytes
func (m *Metadata) UnmarshalText(s []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(s), "0x"))
	if nil != err {
		return err
	}
	if MetadataSize != len(b) {
		return fault.InvalidKeyLength
	}
	copy(m[:], b)
	return nil
}

// Authority - the signatories of a DAO and the approvals it needs
//
// threshold 0 is a single signer acting directly
type Authority struct {
	Signatories []account.AccountId `json:"signatories"`
	Threshold   uint16              `json:"threshold"`
}

func (a Authority) Encode(e *codec.Encoder) {
	account.EncodeList(e, a.Signatories)
	e.Uint16(a.Threshold)
}

func (a *Authority) Decode(d *codec.Decoder) {
	a.Signatories = account.DecodeList(d)
	a.Threshold = d.Uint16()
}

// Validate - sorted unique signatories within bounds and a threshold
// in range
func (a Authority) Validate(maxSignatories int) error {
	n := len(a.Signatories)
	if n > maxSignatories {
		return ErrTooManySignatories
	}
	if 0 == n || !account.IsSortedUnique(a.Signatories) {
		return ErrInvalidAuthority
	}
	if 0 == a.Threshold {
		if 1 != n {
			return ErrInvalidAuthority
		}
		return nil
	}
	if int(a.Threshold) > n {
		return ErrInvalidAuthority
	}
	return nil
}

// Key - the account the signatories control together
func (a Authority) Key() account.AccountId {
	if 0 == a.Threshold {
		return a.Signatories[0]
	}
	return account.MultiAccountId(a.Signatories, a.Threshold)
}

// Approvals - number of member approvals needed
func (a Authority) Approvals() int {
	if 0 == a.Threshold {
		return 1
	}
	return int(a.Threshold)
}

// IsMember - true if the account is a signatory
func (a Authority) IsMember(who account.AccountId) bool {
	return a.index(who) >= 0
}

func (a Authority) index(who account.AccountId) int {
	for i, s := range a.Signatories {
		if s == who {
			return i
		}
	}
	return -1
}

// Dao - a multisignatory account
type Dao struct {
	Id           DaoId             `json:"id"`
	Owner        account.AccountId `json:"owner"`
	Authority    Authority         `json:"authority"`
	AuthorityKey account.AccountId `json:"authorityKey"`
	DaoKey       account.AccountId `json:"daoKey"`
	Metadata     *Metadata         `json:"metadata,omitempty"`
}

func (dao Dao) Encode(e *codec.Encoder) {
	e.Fixed(dao.Id[:])
	dao.Owner.Encode(e)
	dao.Authority.Encode(e)
	dao.AuthorityKey.Encode(e)
	dao.DaoKey.Encode(e)
	if e.Option(nil != dao.Metadata) {
		e.Fixed(dao.Metadata[:])
	}
}

func (dao *Dao) Decode(d *codec.Decoder) {
	d.Fixed(dao.Id[:])
	dao.Owner.Decode(d)
	dao.Authority.Decode(d)
	dao.AuthorityKey.Decode(d)
	dao.DaoKey.Decode(d)
	dao.Metadata = nil
	if d.Option() {
		dao.Metadata = &Metadata{}
		d.Fixed(dao.Metadata[:])
	}
}

// KeyOf - the origin a DAO dispatches as, stable for its lifetime
func KeyOf(id DaoId) account.AccountId {
	return account.DerivedAccount("dao", id[:])
}

// change kinds of alter_authority
const (
	ChangeAddMember        = 0
	ChangeRemoveMember     = 1
	ChangeReplaceAuthority = 2
)

// Change - a mutation of the signatory set
type Change struct {
	Kind              uint8
	Member            account.AccountId // add and remove
	PreserveThreshold bool              // add and remove
	Authority         Authority         // replace
}

func (c Change) Encode(e *codec.Encoder) {
	e.Uint8(c.Kind)
	switch c.Kind {
	case ChangeAddMember, ChangeRemoveMember:
		c.Member.Encode(e)
		e.Bool(c.PreserveThreshold)
	case ChangeReplaceAuthority:
		c.Authority.Encode(e)
	}
}

func (c *Change) Decode(d *codec.Decoder) {
	c.Kind = d.Uint8()
	switch c.Kind {
	case ChangeAddMember, ChangeRemoveMember:
		c.Member.Decode(d)
		c.PreserveThreshold = d.Bool()
	case ChangeReplaceAuthority:
		c.Authority.Decode(d)
	default:
		d.Fail(fault.UnknownEnumValue)
	}
}

// Apply - the authority after the change
func (c Change) Apply(a Authority) (Authority, error) {
	switch c.Kind {
	case ChangeAddMember:
		if a.IsMember(c.Member) {
			return a, ErrMemberExists
		}
		signatories := append(append([]account.AccountId{}, a.Signatories...), c.Member)
		return resize(a, account.SortUnique(signatories), c.PreserveThreshold), nil

	case ChangeRemoveMember:
		i := a.index(c.Member)
		if i < 0 {
			return a, ErrUnknownMember
		}
		signatories := append([]account.AccountId{}, a.Signatories[:i]...)
		signatories = append(signatories, a.Signatories[i+1:]...)
		if 0 == len(signatories) {
			return a, ErrInvalidAuthority
		}
		return resize(a, signatories, c.PreserveThreshold), nil

	case ChangeReplaceAuthority:
		return c.Authority, nil
	}
	return a, ErrUnknownChange
}

// keep the old threshold clamped to the new size or require everyone
func resize(old Authority, signatories []account.AccountId, preserve bool) Authority {
	n := uint16(len(signatories))
	threshold := n
	if preserve {
		threshold = old.Threshold
		if 0 == threshold && n > 1 {
			threshold = 1
		}
		if threshold > n {
			threshold = n
		}
	}
	return Authority{
		Signatories: signatories,
		Threshold:   threshold,
	}
}
