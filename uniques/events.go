// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package uniques

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
)

// ClassCreated - a new class
type ClassCreated struct {
	Class ClassId           `json:"class"`
	Owner account.AccountId `json:"owner"`
}

func (ev ClassCreated) EventName() string { return "ClassCreated" }
func (ev ClassCreated) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Class))
	ev.Owner.Encode(e)
}

// ClassDestroyed - an empty class was removed
type ClassDestroyed struct {
	Class ClassId `json:"class"`
}

func (ev ClassDestroyed) EventName() string { return "ClassDestroyed" }
func (ev ClassDestroyed) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Class))
}

// Issued - a new instance
type Issued struct {
	Class    ClassId           `json:"class"`
	Instance InstanceId        `json:"instance"`
	Owner    account.AccountId `json:"owner"`
}

func (ev Issued) EventName() string { return "Issued" }
func (ev Issued) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Class))
	e.Uint32(uint32(ev.Instance))
	ev.Owner.Encode(e)
}

// Burned - an instance was destroyed
type Burned struct {
	Class    ClassId           `json:"class"`
	Instance InstanceId        `json:"instance"`
	Owner    account.AccountId `json:"owner"`
}

func (ev Burned) EventName() string { return "Burned" }
func (ev Burned) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Class))
	e.Uint32(uint32(ev.Instance))
	ev.Owner.Encode(e)
}

// Transferred - an instance changed owner
type Transferred struct {
	Class    ClassId           `json:"class"`
	Instance InstanceId        `json:"instance"`
	From     account.AccountId `json:"from"`
	To       account.AccountId `json:"to"`
}

func (ev Transferred) EventName() string { return "Transferred" }
func (ev Transferred) Encode(e *codec.Encoder) {
	e.Uint32(uint32(ev.Class))
	e.Uint32(uint32(ev.Instance))
	ev.From.Encode(e)
	ev.To.Encode(e)
}
