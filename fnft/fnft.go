// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fnft

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/uniques"
)

const collectionCounter = "fnft.collection"

// key layouts
//   Collections:     collection
//   Items:           fingerprint
//   Fractions:       fingerprint ++ owner
//   CollectionItems: class ++ instance -> fingerprint
//   FractionAssets:  asset -> fingerprint
func collectionKey(id CollectionId) []byte {
	return storage.Uint32Key(uint32(id))
}

func instanceKey(class uniques.ClassId, instance uniques.InstanceId) []byte {
	return storage.Key(storage.Uint32Key(uint32(class)), storage.Uint32Key(uint32(instance)))
}

func fractionKey(fp Fingerprint, owner account.AccountId) []byte {
	return storage.Key(fp[:], owner[:])
}

// GetCollection - fetch a collection record
func GetCollection(tx storage.Transaction, db *storage.Database, id CollectionId) (Collection, error) {
	c := Collection{}
	buffer := tx.Get(db.Collections, collectionKey(id))
	if nil == buffer {
		return c, ErrUnknownCollection
	}
	err := codec.Unmarshal(buffer, &c)
	if nil != err {
		logger.Panicf("fnft: collection: %d is corrupt: %s", id, err)
	}
	return c, nil
}

func putCollection(ctx *runtime.Context, c Collection) {
	ctx.Tx.Put(ctx.DB.Collections, collectionKey(c.Id), codec.Marshal(c))
}

// GetItem - fetch an item by fingerprint
func GetItem(tx storage.Transaction, db *storage.Database, fp Fingerprint) (Item, error) {
	item := Item{}
	buffer := tx.Get(db.Items, fp[:])
	if nil == buffer {
		return item, ErrUnknownItem
	}
	err := codec.Unmarshal(buffer, &item)
	if nil != err {
		logger.Panicf("fnft: item: %s is corrupt: %s", fp, err)
	}
	return item, nil
}

func putItem(ctx *runtime.Context, item Item) {
	ctx.Tx.Put(ctx.DB.Items, item.Fingerprint[:], codec.Marshal(item))
}

// ItemByInstance - the fingerprint behind an underlying instance
func ItemByInstance(tx storage.Transaction, db *storage.Database, class uniques.ClassId, instance uniques.InstanceId) (Item, error) {
	buffer := tx.Get(db.CollectionItems, instanceKey(class, instance))
	if nil == buffer {
		return Item{}, ErrUnknownItem
	}
	fp := Fingerprint{}
	copy(fp[:], buffer)
	return GetItem(tx, db, fp)
}

// CreateCollection - new empty collection backed by a fresh class
func CreateCollection(ctx *runtime.Context, owner account.AccountId, maxItems uint32) (CollectionId, error) {
	if 0 == maxItems {
		return 0, ErrBadValue
	}
	class, err := uniques.CreateClass(ctx, owner)
	if nil != err {
		return 0, err
	}
	id := CollectionId(ctx.DB.NextCount(ctx.Tx, collectionCounter))
	putCollection(ctx, Collection{
		Id:       id,
		Owner:    owner,
		Class:    class,
		MaxItems: maxItems,
	})
	ctx.Deposit(constants.ModuleFnft, CollectionCreated{
		Collection: id,
		Owner:      owner,
		MaxItems:   maxItems,
	})
	return id, nil
}

// TransferCollection - reassign a collection and its class
func TransferCollection(ctx *runtime.Context, id CollectionId, from account.AccountId, to account.AccountId) error {
	c, err := GetCollection(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if c.Owner != from {
		return ErrWrongOwner
	}
	c.Owner = to
	putCollection(ctx, c)
	err = uniques.SetClassOwner(ctx, c.Class, to)
	if nil != err {
		return err
	}
	ctx.Deposit(constants.ModuleFnft, CollectionTransferred{
		Collection: id,
		From:       from,
		To:         to,
	})
	return nil
}

// MintItem - register a unique item in a collection
func MintItem(ctx *runtime.Context, id CollectionId, owner account.AccountId, unique Unique) (Fingerprint, error) {
	fp := unique.Fingerprint()
	c, err := GetCollection(ctx.Tx, ctx.DB, id)
	if nil != err {
		return fp, err
	}
	if ctx.Tx.Has(ctx.DB.Items, fp[:]) {
		return fp, ErrItemExists
	}
	if c.Count >= c.MaxItems {
		return fp, ErrCollectionFull
	}

	instance := c.NextInstance
	c.NextInstance += 1
	c.Count += 1
	putCollection(ctx, c)

	err = uniques.Mint(ctx, c.Class, instance, owner)
	if nil != err {
		return fp, err
	}
	putItem(ctx, Item{
		Fingerprint: fp,
		Owner:       owner,
		Collection:  id,
		Instance:    instance,
	})
	ctx.Tx.Put(ctx.DB.CollectionItems, instanceKey(c.Class, instance), fp[:])
	ctx.Deposit(constants.ModuleFnft, ItemMinted{
		Collection:  id,
		Fingerprint: fp,
		Owner:       owner,
	})
	return fp, nil
}

// TransferItem - move a whole item, fractional items move by fractions
func TransferItem(ctx *runtime.Context, fp Fingerprint, from account.AccountId, to account.AccountId) error {
	item, err := GetItem(ctx.Tx, ctx.DB, fp)
	if nil != err {
		return err
	}
	if item.Owner != from {
		return ErrWrongOwner
	}
	if item.IsFractional() {
		return ErrNoPermission
	}
	if from == to {
		return ErrBadTarget
	}
	c, err := GetCollection(ctx.Tx, ctx.DB, item.Collection)
	if nil != err {
		return err
	}
	item.Owner = to
	putItem(ctx, item)
	err = uniques.Transfer(ctx, c.Class, item.Instance, to)
	if nil != err {
		return err
	}
	ctx.Deposit(constants.ModuleFnft, ItemTransferred{
		Fingerprint: fp,
		From:        from,
		To:          to,
	})
	return nil
}

// BurnItem - destroy a whole item, its collection slot is released
func BurnItem(ctx *runtime.Context, fp Fingerprint, owner account.AccountId) error {
	item, err := GetItem(ctx.Tx, ctx.DB, fp)
	if nil != err {
		return err
	}
	if item.Owner != owner {
		return ErrWrongOwner
	}
	if item.IsFractional() {
		return ErrNoPermission
	}
	c, err := GetCollection(ctx.Tx, ctx.DB, item.Collection)
	if nil != err {
		return err
	}
	c.Count -= 1
	putCollection(ctx, c)
	err = uniques.Burn(ctx, c.Class, item.Instance)
	if nil != err {
		return err
	}
	ctx.Tx.Delete(ctx.DB.Items, fp[:])
	ctx.Tx.Delete(ctx.DB.CollectionItems, instanceKey(c.Class, item.Instance))
	ctx.Deposit(constants.ModuleFnft, ItemBurned{
		Fingerprint: fp,
		Owner:       owner,
	})
	return nil
}

// ItemsOf - fingerprints of a collection in instance order
func ItemsOf(tx storage.Transaction, db *storage.Database, id CollectionId) ([]Fingerprint, error) {
	c, err := GetCollection(tx, db, id)
	if nil != err {
		return nil, err
	}
	result := make([]Fingerprint, 0, c.Count)
	tx.Range(db.CollectionItems, storage.Uint32Key(uint32(c.Class)), func(key []byte, value []byte) bool {
		fp := Fingerprint{}
		copy(fp[:], value)
		result = append(result, fp)
		return true
	})
	return result, nil
}
