// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// PortalId - a tenant, the id of the DAO that owns the portal
type PortalId dao.DaoId

// String - the DAO label form
func (id PortalId) String() string {
	return dao.DaoId(id).String()
}

// MarshalText - as String
func (id PortalId) MarshalText() ([]byte, error) {
	return dao.DaoId(id).MarshalText()
}

// UnmarshalText - label or 0x hex
func (id *PortalId) UnmarshalText(s []byte) error {
	return (*dao.DaoId)(id).UnmarshalText(s)
}

// Tag - the form carried in the signed extension
func (id PortalId) Tag() *extrinsic.PortalTag {
	t := extrinsic.PortalTag(id)
	return &t
}

// Portal - a tenant routing entry
type Portal struct {
	Id       PortalId          `json:"id"`
	Owner    account.AccountId `json:"owner"`
	Delegate account.AccountId `json:"delegate"`
	Metadata *dao.Metadata     `json:"metadata,omitempty"`
}

func (p Portal) Encode(e *codec.Encoder) {
	e.Fixed(p.Id[:])
	p.Owner.Encode(e)
	p.Delegate.Encode(e)
	if e.Option(nil != p.Metadata) {
		e.Fixed(p.Metadata[:])
	}
}

func (p *Portal) Decode(d *codec.Decoder) {
	d.Fixed(p.Id[:])
	p.Owner.Decode(d)
	p.Delegate.Decode(d)
	p.Metadata = nil
	if d.Option() {
		p.Metadata = &dao.Metadata{}
		d.Fixed(p.Metadata[:])
	}
}

// Postponed - a call of the portal owner waiting for its due block
type Postponed struct {
	Portal   PortalId     `json:"portal"`
	Sequence uint64       `json:"sequence"`
	Due      uint64       `json:"due"`
	Call     runtime.Call `json:"call"`
}

func (p Postponed) Encode(e *codec.Encoder) {
	e.Fixed(p.Portal[:])
	e.Uint64(p.Sequence)
	e.Uint64(p.Due)
	p.Call.Encode(e)
}

func (p *Postponed) Decode(d *codec.Decoder) {
	d.Fixed(p.Portal[:])
	p.Sequence = d.Uint64()
	p.Due = d.Uint64()
	p.Call.Decode(d)
}
