// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// DaoCreate - a new DAO
type DaoCreate struct {
	Id           DaoId               `json:"id"`
	Owner        account.AccountId   `json:"owner"`
	DaoKey       account.AccountId   `json:"daoKey"`
	AuthorityKey account.AccountId   `json:"authorityKey"`
	Signatories  []account.AccountId `json:"signatories"`
	Threshold    uint16              `json:"threshold"`
}

func (ev DaoCreate) EventName() string { return "DaoCreate" }
func (ev DaoCreate) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Owner.Encode(e)
	ev.DaoKey.Encode(e)
	ev.AuthorityKey.Encode(e)
	account.EncodeList(e, ev.Signatories)
	e.Uint16(ev.Threshold)
}

// DaoAlterAuthority - the signatories changed
type DaoAlterAuthority struct {
	Id           DaoId               `json:"id"`
	AuthorityKey account.AccountId   `json:"authorityKey"`
	Signatories  []account.AccountId `json:"signatories"`
	Threshold    uint16              `json:"threshold"`
}

func (ev DaoAlterAuthority) EventName() string { return "DaoAlterAuthority" }
func (ev DaoAlterAuthority) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.AuthorityKey.Encode(e)
	account.EncodeList(e, ev.Signatories)
	e.Uint16(ev.Threshold)
}

// DaoMetadataUpdated - new metadata, nil clears it
type DaoMetadataUpdated struct {
	Id       DaoId     `json:"id"`
	Metadata *Metadata `json:"metadata"`
}

func (ev DaoMetadataUpdated) EventName() string { return "DaoMetadataUpdated" }
func (ev DaoMetadataUpdated) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	if e.Option(nil != ev.Metadata) {
		e.Fixed(ev.Metadata[:])
	}
}

// DaoDispatched - a call ran as the DAO
type DaoDispatched struct {
	Id   DaoId        `json:"id"`
	Call runtime.Hash `json:"call"`
}

func (ev DaoDispatched) EventName() string { return "DaoDispatched" }
func (ev DaoDispatched) Encode(e *codec.Encoder) {
	e.Fixed(ev.Id[:])
	ev.Call.Encode(e)
}
