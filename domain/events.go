// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/dao"
)

// DomainCreated - a new domain
type DomainCreated struct {
	Name  string            `json:"name"`
	Owner account.AccountId `json:"owner"`
}

func (ev DomainCreated) EventName() string { return "DomainCreated" }
func (ev DomainCreated) Encode(e *codec.Encoder) {
	e.String(ev.Name)
	ev.Owner.Encode(e)
}

// DomainUpdated - the metadata changed
type DomainUpdated struct {
	Name     string        `json:"name"`
	Metadata *dao.Metadata `json:"metadata,omitempty"`
}

func (ev DomainUpdated) EventName() string { return "DomainUpdated" }
func (ev DomainUpdated) Encode(e *codec.Encoder) {
	e.String(ev.Name)
	if e.Option(nil != ev.Metadata) {
		e.Fixed(ev.Metadata[:])
	}
}

// DomainTransferred - a new owner
type DomainTransferred struct {
	Name string            `json:"name"`
	From account.AccountId `json:"from"`
	To   account.AccountId `json:"to"`
}

func (ev DomainTransferred) EventName() string { return "DomainTransferred" }
func (ev DomainTransferred) Encode(e *codec.Encoder) {
	e.String(ev.Name)
	ev.From.Encode(e)
	ev.To.Encode(e)
}
