// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package domain - registry of named namespaces
package domain

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// Get - a domain by name
func Get(tx storage.Transaction, db *storage.Database, name string) (Domain, error) {
	dm := Domain{}
	buffer := tx.Get(db.Domains, []byte(name))
	if nil == buffer {
		return dm, ErrUnknownDomain
	}
	err := codec.Unmarshal(buffer, &dm)
	if nil != err {
		logger.Panicf("domain: %q is corrupt: %s", name, err)
	}
	return dm, nil
}

// List - a page of domains in name order
func List(tx storage.Transaction, db *storage.Database, start int, count int) ([]Domain, error) {
	result := make([]Domain, 0)
	_, err := storage.Page(tx, db.Domains, nil, start, count, func(key []byte, value []byte) {
		dm := Domain{}
		err := codec.Unmarshal(value, &dm)
		if nil != err {
			logger.Panicf("domain: %q is corrupt: %s", key, err)
		}
		result = append(result, dm)
	})
	return result, err
}

func put(ctx *runtime.Context, dm Domain) {
	ctx.Tx.Put(ctx.DB.Domains, []byte(dm.Name), codec.Marshal(dm))
}

// Create - register a new domain name
func Create(ctx *runtime.Context, owner account.AccountId, name string, metadata *dao.Metadata) (Domain, error) {
	if !ValidName(name) {
		return Domain{}, ErrInvalidName
	}
	if ctx.Tx.Has(ctx.DB.Domains, []byte(name)) {
		return Domain{}, ErrDomainExists
	}
	dm := Domain{
		Name:      name,
		Owner:     owner,
		Metadata:  metadata,
		CreatedAt: ctx.Block,
	}
	put(ctx, dm)
	ctx.Deposit(constants.ModuleDomain, DomainCreated{
		Name:  name,
		Owner: owner,
	})
	return dm, nil
}

func owned(ctx *runtime.Context, owner account.AccountId, name string) (Domain, error) {
	dm, err := Get(ctx.Tx, ctx.DB, name)
	if nil != err {
		return dm, err
	}
	if dm.Owner != owner {
		return dm, ErrNotDomainOwner
	}
	return dm, nil
}

// Update - replace the metadata, nil clears it
func Update(ctx *runtime.Context, owner account.AccountId, name string, metadata *dao.Metadata) error {
	dm, err := owned(ctx, owner, name)
	if nil != err {
		return err
	}
	dm.Metadata = metadata
	put(ctx, dm)
	ctx.Deposit(constants.ModuleDomain, DomainUpdated{
		Name:     name,
		Metadata: metadata,
	})
	return nil
}

// Transfer - give the domain to another account
func Transfer(ctx *runtime.Context, owner account.AccountId, name string, to account.AccountId) error {
	dm, err := owned(ctx, owner, name)
	if nil != err {
		return err
	}
	if to == owner {
		return ErrTransferToSelf
	}
	dm.Owner = to
	put(ctx, dm)
	ctx.Deposit(constants.ModuleDomain, DomainTransferred{
		Name: name,
		From: owner,
		To:   to,
	})
	return nil
}
