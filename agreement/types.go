// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package agreement

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// State - lifecycle of an agreement
type State uint8

// agreement states
const (
	Open      State = 0
	Concluded State = 1
	Cancelled State = 2
)

var stateNames = []string{"open", "concluded", "cancelled"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Agreement - terms agreed by a fixed set of parties
//
// the terms document lives off chain, only its hash is stored
type Agreement struct {
	Id        uint64              `json:"id"`
	Creator   account.AccountId   `json:"creator"`
	Parties   []account.AccountId `json:"parties"`
	Signed    []bool              `json:"signed"`
	Terms     runtime.Hash        `json:"terms"`
	State     State               `json:"state"`
	CreatedAt uint64              `json:"createdAt"`
}

func (a Agreement) Encode(e *codec.Encoder) {
	e.Uint64(a.Id)
	a.Creator.Encode(e)
	account.EncodeList(e, a.Parties)
	for _, s := range a.Signed {
		e.Bool(s)
	}
	a.Terms.Encode(e)
	e.Uint8(uint8(a.State))
	e.Uint64(a.CreatedAt)
}

func (a *Agreement) Decode(d *codec.Decoder) {
	a.Id = d.Uint64()
	a.Creator.Decode(d)
	a.Parties = account.DecodeList(d)
	a.Signed = make([]bool, len(a.Parties))
	for i := range a.Signed {
		a.Signed[i] = d.Bool()
	}
	a.Terms.Decode(d)
	a.State = State(d.Uint8())
	if a.State > Cancelled {
		d.Fail(fault.UnknownEnumValue)
	}
	a.CreatedAt = d.Uint64()
}

func (a Agreement) party(who account.AccountId) int {
	for i, p := range a.Parties {
		if p == who {
			return i
		}
	}
	return -1
}

func (a Agreement) complete() bool {
	for _, s := range a.Signed {
		if !s {
			return false
		}
	}
	return true
}
