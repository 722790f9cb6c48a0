// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package agreement - contracts concluded when every party has signed
package agreement

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

const agreementCounter = "agreement"

// Get - an agreement by id
func Get(tx storage.Transaction, db *storage.Database, id uint64) (Agreement, error) {
	a := Agreement{}
	buffer := tx.Get(db.Agreements, storage.Uint64Key(id))
	if nil == buffer {
		return a, ErrUnknownAgreement
	}
	err := codec.Unmarshal(buffer, &a)
	if nil != err {
		logger.Panicf("agreement: %d is corrupt: %s", id, err)
	}
	return a, nil
}

func put(ctx *runtime.Context, a Agreement) {
	ctx.Tx.Put(ctx.DB.Agreements, storage.Uint64Key(a.Id), codec.Marshal(a))
}

// Create - open an agreement, the creator must be a party and signs
// on creation
func Create(ctx *runtime.Context, creator account.AccountId, parties []account.AccountId, terms runtime.Hash) (Agreement, error) {
	if len(parties) < 2 {
		return Agreement{}, ErrTooFewParties
	}
	if len(parties) > ctx.Parameters.MaxSignatories {
		return Agreement{}, ErrTooManyParties
	}
	if len(account.SortUnique(parties)) != len(parties) {
		return Agreement{}, ErrDuplicateParty
	}

	a := Agreement{
		Creator:   creator,
		Parties:   parties,
		Signed:    make([]bool, len(parties)),
		Terms:     terms,
		State:     Open,
		CreatedAt: ctx.Block,
	}
	i := a.party(creator)
	if i < 0 {
		return Agreement{}, ErrNotParty
	}
	a.Id = ctx.DB.NextCount(ctx.Tx, agreementCounter)
	a.Signed[i] = true

	put(ctx, a)
	ctx.Deposit(constants.ModuleAgreement, ContractAgreementCreated{
		Id:      a.Id,
		Creator: creator,
		Parties: parties,
		Terms:   terms,
	})
	return a, nil
}

func open(ctx *runtime.Context, who account.AccountId, id uint64) (Agreement, int, error) {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return a, -1, err
	}
	i := a.party(who)
	if i < 0 {
		return a, -1, ErrNotParty
	}
	if Open != a.State {
		return a, i, ErrNotOpen
	}
	return a, i, nil
}

// Sign - add a party's signature, returns the resulting state
func Sign(ctx *runtime.Context, who account.AccountId, id uint64) (State, error) {
	a, i, err := open(ctx, who, id)
	if nil != err {
		return a.State, err
	}
	if a.Signed[i] {
		return a.State, ErrPartySigned
	}
	a.Signed[i] = true
	ctx.Deposit(constants.ModuleAgreement, ContractAgreementSigned{
		Id:    id,
		Party: who,
	})
	if a.complete() {
		a.State = Concluded
		ctx.Deposit(constants.ModuleAgreement, ContractAgreementConcluded{
			Id: id,
		})
	}
	put(ctx, a)
	return a.State, nil
}

// Cancel - any party can withdraw an open agreement
func Cancel(ctx *runtime.Context, who account.AccountId, id uint64) error {
	a, _, err := open(ctx, who, id)
	if nil != err {
		return err
	}
	a.State = Cancelled
	put(ctx, a)
	ctx.Deposit(constants.ModuleAgreement, ContractAgreementCancelled{
		Id: id,
		By: who,
	})
	return nil
}
