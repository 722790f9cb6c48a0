// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnfts

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fnft"
	"github.com/bitmark-inc/ipchaind/rpc/ratelimit"
	"github.com/bitmark-inc/ipchaind/rpc/reply"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/uniques"
)

const (
	rateLimitFNFT = 200
	rateBurstFNFT = 100
)

// FNFT - the tokenized item service
type FNFT struct {
	Log     *logger.L
	Limiter *rate.Limiter
	db      *storage.Database
}

// New - create the FNFT service
func New(log *logger.L, db *storage.Database) *FNFT {
	return &FNFT{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFNFT, rateBurstFNFT),
		db:      db,
	}
}

func (f *FNFT) begin() (storage.Transaction, error) {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return nil, err
	}
	if nil == f.db {
		return nil, fault.DatabaseIsNotSet
	}
	return f.db.NewTransaction(), nil
}

// ---

// ItemArguments - the fingerprint of an item
type ItemArguments struct {
	Fingerprint fnft.Fingerprint `json:"fingerprint"`
}

// ItemReply - an item with its fractions if it has any
type ItemReply struct {
	Item      fnft.Item       `json:"item"`
	Fractions []fnft.Fraction `json:"fractions,omitempty"`
}

// Item - fetch an item by fingerprint
func (f *FNFT) Item(arguments *ItemArguments, result *ItemReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	item, err := fnft.GetItem(tx, f.db, arguments.Fingerprint)
	if nil != err {
		return reply.Error(err)
	}
	result.Item = item
	if item.IsFractional() {
		result.Fractions = fnft.FractionsOf(tx, f.db, arguments.Fingerprint)
	}
	return nil
}

// InstanceArguments - the underlying non-fungible instance
type InstanceArguments struct {
	Class    uniques.ClassId    `json:"class"`
	Instance uniques.InstanceId `json:"instance"`
}

// ItemByInstance - fetch an item by its underlying instance
func (f *FNFT) ItemByInstance(arguments *InstanceArguments, result *ItemReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	item, err := fnft.ItemByInstance(tx, f.db, arguments.Class, arguments.Instance)
	if nil != err {
		return reply.Error(err)
	}
	result.Item = item
	if item.IsFractional() {
		result.Fractions = fnft.FractionsOf(tx, f.db, item.Fingerprint)
	}
	return nil
}

// ---

// CollectionArguments - a collection id
type CollectionArguments struct {
	Id fnft.CollectionId `json:"id"`
}

// CollectionReply - a collection and the fingerprints of its items
type CollectionReply struct {
	Collection fnft.Collection    `json:"collection"`
	Items      []fnft.Fingerprint `json:"items"`
}

// Collection - fetch a collection
func (f *FNFT) Collection(arguments *CollectionArguments, result *CollectionReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	c, err := fnft.GetCollection(tx, f.db, arguments.Id)
	if nil != err {
		return reply.Error(err)
	}
	items, err := fnft.ItemsOf(tx, f.db, arguments.Id)
	if nil != err {
		return reply.Error(err)
	}
	result.Collection = c
	result.Items = items
	return nil
}

// ---

// FractionArguments - one owner's share of an item
type FractionArguments struct {
	Fingerprint fnft.Fingerprint  `json:"fingerprint"`
	Owner       account.AccountId `json:"owner"`
}

// FractionReply - the share and the total it is part of
type FractionReply struct {
	Fraction fnft.Fraction `json:"fraction"`
	Total    uint64        `json:"total"`
}

// Fraction - fetch the fraction of an owner, a missing fraction is
// reported as zero
func (f *FNFT) Fraction(arguments *FractionArguments, result *FractionReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	total, ok := fnft.TotalFraction(tx, f.db, arguments.Fingerprint)
	if !ok {
		return reply.Error(fnft.ErrNotFractionalized)
	}
	fraction, ok := fnft.GetFraction(tx, f.db, arguments.Fingerprint, arguments.Owner)
	if !ok {
		fraction = fnft.Fraction{
			Owner:       arguments.Owner,
			Fingerprint: arguments.Fingerprint,
		}
	}
	result.Fraction = fraction
	result.Total = total
	return nil
}

// ---

// OwnerReply - the owner of record
type OwnerReply struct {
	Owner account.AccountId `json:"owner"`
}

// Owner - owner of record of an instance
func (f *FNFT) Owner(arguments *InstanceArguments, result *OwnerReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	owner, err := fnft.OwnerOf(tx, f.db, arguments.Class, arguments.Instance)
	if nil != err {
		return reply.Error(err)
	}
	result.Owner = owner
	return nil
}

// BalanceArguments - an account and an instance
type BalanceArguments struct {
	Class    uniques.ClassId    `json:"class"`
	Instance uniques.InstanceId `json:"instance"`
	Owner    account.AccountId  `json:"owner"`
}

// AmountReply - a quantity of fractions
type AmountReply struct {
	Amount uint64 `json:"amount"`
}

// Balance - fractions of an instance held by an account
func (f *FNFT) Balance(arguments *BalanceArguments, result *AmountReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	amount, err := fnft.BalanceOf(tx, f.db, arguments.Class, arguments.Instance, arguments.Owner)
	if nil != err {
		return reply.Error(err)
	}
	result.Amount = amount
	return nil
}

// TotalIssuance - supply of the fractions of an instance
func (f *FNFT) TotalIssuance(arguments *InstanceArguments, result *AmountReply) error {
	tx, err := f.begin()
	if nil != err {
		return err
	}

	amount, err := fnft.TotalIssuanceOf(tx, f.db, arguments.Class, arguments.Instance)
	if nil != err {
		return reply.Error(err)
	}
	result.Amount = amount
	return nil
}
