// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// PortalCreated - a tenant registered its portal
type PortalCreated struct {
	Id       PortalId          `json:"id"`
	Owner    account.AccountId `json:"owner"`
	Delegate account.AccountId `json:"delegate"`
}

func (ev PortalCreated) EventName() string { return "PortalCreated" }
func (ev PortalCreated) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Owner.Encode(e)
	ev.Delegate.Encode(e)
}

// PortalUpdated - new delegate or metadata
type PortalUpdated struct {
	Id       PortalId          `json:"id"`
	Delegate account.AccountId `json:"delegate"`
	Metadata *dao.Metadata     `json:"metadata,omitempty"`
}

func (ev PortalUpdated) EventName() string { return "PortalUpdated" }
func (ev PortalUpdated) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Delegate.Encode(e)
	if e.Option(nil != ev.Metadata) {
		e.Fixed(ev.Metadata[:])
	}
}

// Signed - a delegate countersigned an extrinsic
type Signed struct {
	Portal PortalId     `json:"portal"`
	Hash   runtime.Hash `json:"hash"`
}

func (ev Signed) EventName() string { return "Signed" }
func (ev Signed) Encode(e *codec.Encoder) {
	e.Fixed(ev.Portal[:])
	ev.Hash.Encode(e)
}

// Executed - a countersigned extrinsic ran
type Executed struct {
	Portal PortalId            `json:"portal"`
	Hash   runtime.Hash        `json:"hash"`
	Error  *fault.Discriminant `json:"error,omitempty"`
}

func (ev Executed) EventName() string { return "Executed" }
func (ev Executed) Encode(e *codec.Encoder) {
	e.Fixed(ev.Portal[:])
	ev.Hash.Encode(e)
	if e.Option(nil != ev.Error) {
		e.Uint8(ev.Error.Module)
		e.Uint8(ev.Error.Index)
		e.String(ev.Error.Tag)
	}
}

// Scheduled - a call was postponed to a due block
type Scheduled struct {
	Portal   PortalId     `json:"portal"`
	Sequence uint64       `json:"sequence"`
	Due      uint64       `json:"due"`
	Call     runtime.Hash `json:"call"`
}

func (ev Scheduled) EventName() string { return "Scheduled" }
func (ev Scheduled) Encode(e *codec.Encoder) {
	e.Fixed(ev.Portal[:])
	e.Uint64(ev.Sequence)
	e.Uint64(ev.Due)
	ev.Call.Encode(e)
}

// PostponedExecuted - a due call ran, the error is the result of the
// inner call
type PostponedExecuted struct {
	Portal   PortalId            `json:"portal"`
	Sequence uint64              `json:"sequence"`
	Error    *fault.Discriminant `json:"error,omitempty"`
}

func (ev PostponedExecuted) EventName() string { return "PostponedExecuted" }
func (ev PostponedExecuted) Encode(e *codec.Encoder) {
	e.Fixed(ev.Portal[:])
	e.Uint64(ev.Sequence)
	if e.Option(nil != ev.Error) {
		e.Uint8(ev.Error.Module)
		e.Uint8(ev.Error.Index)
		e.String(ev.Error.Tag)
	}
}
