// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fungible

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/util"
)

const assetCounter = "fungible.asset"

// key layouts
//   Assets:   id
//   Balances: id ++ account
//   Reserves: id ++ bucket ++ account
//   Locks:    id ++ account ++ lock
func assetKey(id AssetId) []byte {
	return storage.Uint32Key(uint32(id))
}

func balanceKey(id AssetId, who account.AccountId) []byte {
	return storage.Key(assetKey(id), who[:])
}

func reserveKey(id AssetId, bucket Bucket, who account.AccountId) []byte {
	return storage.Key(assetKey(id), bucket[:], who[:])
}

func lockKey(id AssetId, who account.AccountId, lock LockId) []byte {
	return storage.Key(assetKey(id), who[:], lock[:])
}

// Get - fetch an asset record
func Get(tx storage.Transaction, db *storage.Database, id AssetId) (Asset, error) {
	a := Asset{}
	buffer := tx.Get(db.Assets, assetKey(id))
	if nil == buffer {
		return a, ErrUnknownAsset
	}
	err := codec.Unmarshal(buffer, &a)
	if nil != err {
		logger.Panicf("fungible: asset: %d is corrupt: %s", id, err)
	}
	return a, nil
}

func put(ctx *runtime.Context, a Asset) {
	ctx.Tx.Put(ctx.DB.Assets, assetKey(a.Id), codec.Marshal(a))
}

// Balance - free balance including any locked part
func Balance(tx storage.Transaction, db *storage.Database, id AssetId, who account.AccountId) uint64 {
	n, _ := storage.GetN(tx, db.Balances, balanceKey(id, who))
	return n
}

func setBalance(ctx *runtime.Context, id AssetId, who account.AccountId, amount uint64) {
	if 0 == amount {
		ctx.Tx.Delete(ctx.DB.Balances, balanceKey(id, who))
		return
	}
	storage.PutN(ctx.Tx, ctx.DB.Balances, balanceKey(id, who), amount)
}

// Locked - the largest lock on an account, locks overlap
func Locked(tx storage.Transaction, db *storage.Database, id AssetId, who account.AccountId) uint64 {
	locked := uint64(0)
	tx.Range(db.Locks, balanceKey(id, who), func(key []byte, value []byte) bool {
		n, _ := storage.GetN(tx, db.Locks, key)
		if n > locked {
			locked = n
		}
		return true
	})
	return locked
}

// Usable - free balance not covered by a lock
func Usable(tx storage.Transaction, db *storage.Database, id AssetId, who account.AccountId) uint64 {
	free := Balance(tx, db, id, who)
	locked := Locked(tx, db, id, who)
	if locked >= free {
		return 0
	}
	return free - locked
}

// Reserved - balance of an account held in a bucket
func Reserved(tx storage.Transaction, db *storage.Database, id AssetId, bucket Bucket, who account.AccountId) uint64 {
	n, _ := storage.GetN(tx, db.Reserves, reserveKey(id, bucket, who))
	return n
}

func setReserved(ctx *runtime.Context, id AssetId, bucket Bucket, who account.AccountId, amount uint64) {
	if 0 == amount {
		ctx.Tx.Delete(ctx.DB.Reserves, reserveKey(id, bucket, who))
		return
	}
	storage.PutN(ctx.Tx, ctx.DB.Reserves, reserveKey(id, bucket, who), amount)
}

// TotalIssuance - supply of an asset
func TotalIssuance(tx storage.Transaction, db *storage.Database, id AssetId) (uint64, error) {
	a, err := Get(tx, db, id)
	if nil != err {
		return 0, err
	}
	return a.Supply, nil
}

// EnsureNative - create the native currency record if missing
func EnsureNative(ctx *runtime.Context) {
	if ctx.Tx.Has(ctx.DB.Assets, assetKey(Native)) {
		return
	}
	put(ctx, Asset{Id: Native})
}

// Create - register a new asset, ids start at 1
func Create(ctx *runtime.Context, owner account.AccountId, managed bool) (AssetId, error) {
	n := ctx.DB.NextCount(ctx.Tx, assetCounter) + 1
	if n > 0xffffffff {
		return 0, ErrBalanceOverflow
	}
	id := AssetId(n)
	if ctx.Tx.Has(ctx.DB.Assets, assetKey(id)) {
		return 0, ErrAssetExists
	}
	put(ctx, Asset{
		Id:      id,
		Owner:   owner,
		Managed: managed,
	})
	ctx.Deposit(constants.ModuleFungible, Created{
		Asset:   id,
		Owner:   owner,
		Managed: managed,
	})
	return id, nil
}

// Destroy - remove an asset once all of its supply is burned
func Destroy(ctx *runtime.Context, id AssetId) error {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if 0 != a.Supply || Native == id {
		return ErrAssetInUse
	}
	ctx.Tx.Delete(ctx.DB.Assets, assetKey(id))
	ctx.Deposit(constants.ModuleFungible, Destroyed{Asset: id})
	return nil
}

// SetLimited - forbid any further minting
func SetLimited(ctx *runtime.Context, id AssetId) error {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if a.Limited {
		return nil
	}
	a.Limited = true
	put(ctx, a)
	ctx.Deposit(constants.ModuleFungible, Limited{Asset: id})
	return nil
}

// Mint - increase supply into an account
func Mint(ctx *runtime.Context, id AssetId, to account.AccountId, amount uint64) error {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if a.Limited {
		return ErrMintingLimited
	}
	supply, ok := util.AddUint64(a.Supply, amount)
	if !ok {
		return ErrBalanceOverflow
	}
	balance, ok := util.AddUint64(Balance(ctx.Tx, ctx.DB, id, to), amount)
	if !ok {
		return ErrBalanceOverflow
	}
	a.Supply = supply
	put(ctx, a)
	setBalance(ctx, id, to, balance)
	ctx.Deposit(constants.ModuleFungible, Issued{
		Asset:  id,
		Owner:  to,
		Amount: amount,
	})
	return nil
}

// Burn - remove usable balance from supply
func Burn(ctx *runtime.Context, id AssetId, from account.AccountId, amount uint64) error {
	a, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	err = ensureUsable(ctx, id, from, amount)
	if nil != err {
		return err
	}
	a.Supply -= amount
	put(ctx, a)
	setBalance(ctx, id, from, Balance(ctx.Tx, ctx.DB, id, from)-amount)
	ctx.Deposit(constants.ModuleFungible, Burned{
		Asset:  id,
		Owner:  from,
		Amount: amount,
	})
	return nil
}

// Transfer - move usable balance
func Transfer(ctx *runtime.Context, id AssetId, from account.AccountId, to account.AccountId, amount uint64) error {
	_, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	err = ensureUsable(ctx, id, from, amount)
	if nil != err {
		return err
	}
	if from != to {
		credit, ok := util.AddUint64(Balance(ctx.Tx, ctx.DB, id, to), amount)
		if !ok {
			return ErrBalanceOverflow
		}
		setBalance(ctx, id, from, Balance(ctx.Tx, ctx.DB, id, from)-amount)
		setBalance(ctx, id, to, credit)
	}
	ctx.Deposit(constants.ModuleFungible, Transferred{
		Asset:  id,
		From:   from,
		To:     to,
		Amount: amount,
	})
	return nil
}

// Reserve - move usable balance into a bucket
func Reserve(ctx *runtime.Context, id AssetId, bucket Bucket, who account.AccountId, amount uint64) error {
	_, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	err = ensureUsable(ctx, id, who, amount)
	if nil != err {
		return err
	}
	reserved, ok := util.AddUint64(Reserved(ctx.Tx, ctx.DB, id, bucket, who), amount)
	if !ok {
		return ErrBalanceOverflow
	}
	setBalance(ctx, id, who, Balance(ctx.Tx, ctx.DB, id, who)-amount)
	setReserved(ctx, id, bucket, who, reserved)
	ctx.Deposit(constants.ModuleFungible, BalanceReserved{
		Asset:  id,
		Bucket: bucket,
		Who:    who,
		Amount: amount,
	})
	return nil
}

// Unreserve - return bucket balance to free
func Unreserve(ctx *runtime.Context, id AssetId, bucket Bucket, who account.AccountId, amount uint64) error {
	reserved := Reserved(ctx.Tx, ctx.DB, id, bucket, who)
	if amount > reserved {
		return ErrInsufficientReserve
	}
	free, ok := util.AddUint64(Balance(ctx.Tx, ctx.DB, id, who), amount)
	if !ok {
		return ErrBalanceOverflow
	}
	setReserved(ctx, id, bucket, who, reserved-amount)
	setBalance(ctx, id, who, free)
	ctx.Deposit(constants.ModuleFungible, Unreserved{
		Asset:  id,
		Bucket: bucket,
		Who:    who,
		Amount: amount,
	})
	return nil
}

// RepatriateReserved - pay bucket balance of one account to the free
// balance of another
func RepatriateReserved(ctx *runtime.Context, id AssetId, bucket Bucket, from account.AccountId, to account.AccountId, amount uint64) error {
	reserved := Reserved(ctx.Tx, ctx.DB, id, bucket, from)
	if amount > reserved {
		return ErrInsufficientReserve
	}
	setReserved(ctx, id, bucket, from, reserved-amount)
	free, ok := util.AddUint64(Balance(ctx.Tx, ctx.DB, id, to), amount)
	if !ok {
		return ErrBalanceOverflow
	}
	setBalance(ctx, id, to, free)
	ctx.Deposit(constants.ModuleFungible, ReserveRepatriated{
		Asset:  id,
		Bucket: bucket,
		From:   from,
		To:     to,
		Amount: amount,
	})
	return nil
}

// SetLock - create or replace a named lock
func SetLock(ctx *runtime.Context, id AssetId, lock LockId, who account.AccountId, amount uint64) {
	if 0 == amount {
		RemoveLock(ctx, id, lock, who)
		return
	}
	storage.PutN(ctx.Tx, ctx.DB.Locks, lockKey(id, who, lock), amount)
}

// RemoveLock - drop a named lock
func RemoveLock(ctx *runtime.Context, id AssetId, lock LockId, who account.AccountId) {
	ctx.Tx.Delete(ctx.DB.Locks, lockKey(id, who, lock))
}

// LockOf - amount of a single named lock
func LockOf(tx storage.Transaction, db *storage.Database, id AssetId, lock LockId, who account.AccountId) (uint64, bool) {
	return storage.GetN(tx, db.Locks, lockKey(id, who, lock))
}

func ensureUsable(ctx *runtime.Context, id AssetId, who account.AccountId, amount uint64) error {
	free := Balance(ctx.Tx, ctx.DB, id, who)
	if amount > free {
		return ErrInsufficientBalance
	}
	if amount > Usable(ctx.Tx, ctx.DB, id, who) {
		return ErrLiquidityRestricted
	}
	return nil
}

// FeePayer - burns transaction fees from the native currency
type FeePayer struct{}

// WithdrawFee - remove the fee from the usable balance of the signer
func (FeePayer) WithdrawFee(ctx *runtime.Context, who account.AccountId, amount uint64) error {
	return Burn(ctx, Native, who, amount)
}
