// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// Proposed - a new pending proposal
type Proposed struct {
	Id      ProposalId          `json:"id"`
	Author  account.AccountId   `json:"author"`
	Signers []account.AccountId `json:"signers"`
}

func (ev Proposed) EventName() string { return "Proposed" }
func (ev Proposed) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Author.Encode(e)
	account.EncodeList(e, ev.Signers)
}

// Approved - a member approved on behalf of a signer
type Approved struct {
	Id     ProposalId        `json:"id"`
	Member account.AccountId `json:"member"`
	Signer account.AccountId `json:"signer"`
}

func (ev Approved) EventName() string { return "Approved" }
func (ev Approved) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Member.Encode(e)
	ev.Signer.Encode(e)
}

// RevokedApproval - a member went back to pending
type RevokedApproval struct {
	Id     ProposalId        `json:"id"`
	Member account.AccountId `json:"member"`
	Signer account.AccountId `json:"signer"`
}

func (ev RevokedApproval) EventName() string { return "RevokedApproval" }
func (ev RevokedApproval) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Member.Encode(e)
	ev.Signer.Encode(e)
}

// Resolved - the final state of a proposal, the error is the first
// failing batch item
type Resolved struct {
	Id    ProposalId          `json:"id"`
	State State               `json:"state"`
	Error *fault.Discriminant `json:"error,omitempty"`
}

func (ev Resolved) EventName() string { return "Resolved" }
func (ev Resolved) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	e.Uint8(uint8(ev.State))
	if e.Option(nil != ev.Error) {
		e.Uint8(ev.Error.Module)
		e.Uint8(ev.Error.Index)
		e.String(ev.Error.Tag)
	}
}

// Expired - removed after its time to live
type Expired struct {
	Id ProposalId `json:"id"`
}

func (ev Expired) EventName() string { return "Expired" }
func (ev Expired) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
}
