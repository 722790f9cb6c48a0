// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/uniques"
)

// OwnerOf - owner of record of an underlying instance
func OwnerOf(tx storage.Transaction, db *storage.Database, class uniques.ClassId, instance uniques.InstanceId) (account.AccountId, error) {
	item, err := ItemByInstance(tx, db, class, instance)
	if nil != err {
		return account.AccountId{}, err
	}
	return item.Owner, nil
}

// BalanceOf - fractions an account holds of an underlying instance
//
// a whole item counts as a single unit for its owner
func BalanceOf(tx storage.Transaction, db *storage.Database, class uniques.ClassId, instance uniques.InstanceId, who account.AccountId) (uint64, error) {
	item, err := ItemByInstance(tx, db, class, instance)
	if nil != err {
		return 0, err
	}
	if !item.IsFractional() {
		if item.Owner == who {
			return 1, nil
		}
		return 0, nil
	}
	return fungible.Balance(tx, db, item.Fractional.Asset, who), nil
}

// TotalIssuanceOf - supply of the side token of an underlying instance
func TotalIssuanceOf(tx storage.Transaction, db *storage.Database, class uniques.ClassId, instance uniques.InstanceId) (uint64, error) {
	item, err := ItemByInstance(tx, db, class, instance)
	if nil != err {
		return 0, err
	}
	if !item.IsFractional() {
		return 0, ErrNotFractionalized
	}
	return fungible.TotalIssuance(tx, db, item.Fractional.Asset)
}
