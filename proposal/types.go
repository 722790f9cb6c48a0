// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// IdSize - bytes in a proposal id
const IdSize = 16

// ProposalId - a timepoint, block ++ extrinsic index ++ sequence
type ProposalId [IdSize]byte

// Timepoint - id of the n-th proposal created by an extrinsic
func Timepoint(block uint64, index uint32, n uint32) ProposalId {
	id := ProposalId{}
	binary.BigEndian.PutUint64(id[0:8], block)
	binary.BigEndian.PutUint32(id[8:12], index)
	binary.BigEndian.PutUint32(id[12:16], n)
	return id
}

// String - hex for fmt %s
func (id ProposalId) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - hex encoded
func (id ProposalId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - from hex
func (id *ProposalId) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != IdSize {
		return fault.InvalidKeyLength
	}
	_, err := hex.Decode(id[:], s)
	return err
}

// Decision - the choice of a signer
type Decision uint8

// decisions
const (
	Pending Decision = 0
	Approve Decision = 1
	Reject  Decision = 2
)

// String - for logging and JSON
func (d Decision) String() string {
	switch d {
	case Pending:
		return "Pending"
	case Approve:
		return "Approve"
	case Reject:
		return "Reject"
	}
	return "Unknown"
}

// MarshalText - the name
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// State - the lifecycle of a proposal
type State uint8

// states, only Pending is ever stored
const (
	StatePending  State = 0
	StateDone     State = 1
	StateRejected State = 2
	StateFailed   State = 3
)

// String - for logging and JSON
func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateDone:
		return "Done"
	case StateRejected:
		return "Rejected"
	case StateFailed:
		return "Failed"
	}
	return "Unknown"
}

// MarshalText - the name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Item - a call and the signer it is dispatched as
type Item struct {
	Signer account.AccountId `json:"signer"`
	Call   runtime.Call      `json:"call"`
}

func (item Item) Encode(e *codec.Encoder) {
	item.Signer.Encode(e)
	item.Call.Encode(e)
}

func (item *Item) Decode(d *codec.Decoder) {
	item.Signer.Decode(d)
	item.Call.Decode(d)
}

// EncodeBatch - Varint64 count followed by the items
func EncodeBatch(e *codec.Encoder, batch []Item) {
	e.Length(len(batch))
	for _, item := range batch {
		item.Encode(e)
	}
}

// DecodeBatch - inverse of EncodeBatch
func DecodeBatch(d *codec.Decoder) []Item {
	n := d.Length()
	if nil != d.Err() {
		return nil
	}
	batch := make([]Item, n)
	for i := range batch {
		batch[i].Decode(d)
	}
	return batch
}

// Vote - the decision of one member of a DAO signer
type Vote struct {
	Member   account.AccountId `json:"member"`
	Decision Decision          `json:"decision"`
}

// Ballot - the decision of a unique signer of the batch
//
// a signer that is a DAO is decided by the votes of its members
type Ballot struct {
	Signer   account.AccountId `json:"signer"`
	Decision Decision          `json:"decision"`
	Votes    []Vote            `json:"votes,omitempty"`
}

func (b Ballot) Encode(e *codec.Encoder) {
	b.Signer.Encode(e)
	e.Uint8(uint8(b.Decision))
	e.Length(len(b.Votes))
	for _, v := range b.Votes {
		v.Member.Encode(e)
		e.Uint8(uint8(v.Decision))
	}
}

func (b *Ballot) Decode(d *codec.Decoder) {
	b.Signer.Decode(d)
	b.Decision = Decision(d.Uint8())
	n := d.Length()
	if nil != d.Err() {
		return
	}
	b.Votes = nil
	if n > 0 {
		b.Votes = make([]Vote, n)
	}
	for i := range b.Votes {
		b.Votes[i].Member.Decode(d)
		b.Votes[i].Decision = Decision(d.Uint8())
	}
}

// vote - record a member vote and tally it against the threshold
func (b *Ballot) vote(member account.AccountId, decision Decision, threshold int) {
	found := false
	for i := range b.Votes {
		if b.Votes[i].Member == member {
			b.Votes[i].Decision = decision
			found = true
		}
	}
	if !found {
		b.Votes = append(b.Votes, Vote{Member: member, Decision: decision})
	}

	approvals := 0
	b.Decision = Pending
	for _, v := range b.Votes {
		switch v.Decision {
		case Reject:
			b.Decision = Reject
			return
		case Approve:
			approvals += 1
		}
	}
	if approvals >= threshold {
		b.Decision = Approve
	}
}

// Proposal - a batch waiting for the decisions of its signers
type Proposal struct {
	Id        ProposalId        `json:"id"`
	Author    account.AccountId `json:"author"`
	Batch     []Item            `json:"batch"`
	Decisions []Ballot          `json:"decisions"`
	State     State             `json:"state"`
	CreatedAt uint64            `json:"createdAt"` // seconds
}

func (p Proposal) Encode(e *codec.Encoder) {
	e.Fixed(p.Id[:])
	p.Author.Encode(e)
	EncodeBatch(e, p.Batch)
	e.Length(len(p.Decisions))
	for _, b := range p.Decisions {
		b.Encode(e)
	}
	e.Uint8(uint8(p.State))
	e.Uint64(p.CreatedAt)
}

func (p *Proposal) Decode(d *codec.Decoder) {
	d.Fixed(p.Id[:])
	p.Author.Decode(d)
	p.Batch = DecodeBatch(d)
	n := d.Length()
	if nil != d.Err() {
		return
	}
	p.Decisions = make([]Ballot, n)
	for i := range p.Decisions {
		p.Decisions[i].Decode(d)
	}
	p.State = State(d.Uint8())
	p.CreatedAt = d.Uint64()
}

// Signers - the unique signers of a batch in order of appearance
func Signers(batch []Item) []account.AccountId {
	seen := make(map[account.AccountId]struct{})
	signers := make([]account.AccountId, 0, len(batch))
	for _, item := range batch {
		if _, ok := seen[item.Signer]; ok {
			continue
		}
		seen[item.Signer] = struct{}{}
		signers = append(signers, item.Signer)
	}
	return signers
}

// outcome - Reject if anyone rejects, Approve once everyone approves
func (p Proposal) outcome() Decision {
	all := true
	for _, b := range p.Decisions {
		switch b.Decision {
		case Reject:
			return Reject
		case Pending:
			all = false
		}
	}
	if all {
		return Approve
	}
	return Pending
}
