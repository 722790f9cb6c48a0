// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package agreement

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// ContractAgreementCreated - a new agreement awaiting signatures
type ContractAgreementCreated struct {
	Id      uint64              `json:"id"`
	Creator account.AccountId   `json:"creator"`
	Parties []account.AccountId `json:"parties"`
	Terms   runtime.Hash        `json:"terms"`
}

func (ev ContractAgreementCreated) EventName() string { return "ContractAgreementCreated" }
func (ev ContractAgreementCreated) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	ev.Creator.Encode(e)
	account.EncodeList(e, ev.Parties)
	ev.Terms.Encode(e)
}

// ContractAgreementSigned - one party signed
type ContractAgreementSigned struct {
	Id    uint64            `json:"id"`
	Party account.AccountId `json:"party"`
}

func (ev ContractAgreementSigned) EventName() string { return "ContractAgreementSigned" }
func (ev ContractAgreementSigned) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	ev.Party.Encode(e)
}

// ContractAgreementConcluded - every party signed
type ContractAgreementConcluded struct {
	Id uint64 `json:"id"`
}

func (ev ContractAgreementConcluded) EventName() string { return "ContractAgreementConcluded" }
func (ev ContractAgreementConcluded) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
}

// ContractAgreementCancelled - a party withdrew before conclusion
type ContractAgreementCancelled struct {
	Id uint64            `json:"id"`
	By account.AccountId `json:"by"`
}

func (ev ContractAgreementCancelled) EventName() string { return "ContractAgreementCancelled" }
func (ev ContractAgreementCancelled) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	ev.By.Encode(e)
}
