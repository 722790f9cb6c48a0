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
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/uniques"
	"github.com/bitmark-inc/ipchaind/util"
)

// GetFraction - the fraction of one owner
func GetFraction(tx storage.Transaction, db *storage.Database, fp Fingerprint, owner account.AccountId) (Fraction, bool) {
	f := Fraction{}
	buffer := tx.Get(db.Fractions, fractionKey(fp, owner))
	if nil == buffer {
		return f, false
	}
	err := codec.Unmarshal(buffer, &f)
	if nil != err {
		logger.Panicf("fnft: fraction: %s/%s is corrupt: %s", fp, owner, err)
	}
	return f, true
}

// FractionsOf - every fraction of an item in owner order
func FractionsOf(tx storage.Transaction, db *storage.Database, fp Fingerprint) []Fraction {
	result := make([]Fraction, 0)
	tx.Range(db.Fractions, fp[:], func(key []byte, value []byte) bool {
		f := Fraction{}
		err := codec.Unmarshal(value, &f)
		if nil != err {
			logger.Panicf("fnft: fraction: %x is corrupt: %s", key, err)
		}
		result = append(result, f)
		return true
	})
	return result
}

func putFraction(ctx *runtime.Context, f Fraction) {
	key := fractionKey(f.Fingerprint, f.Owner)
	if 0 == f.Amount {
		ctx.Tx.Delete(ctx.DB.Fractions, key)
		return
	}
	ctx.Tx.Put(ctx.DB.Fractions, key, codec.Marshal(f))
}

// TotalFraction - total supply of a fractionalized item
func TotalFraction(tx storage.Transaction, db *storage.Database, fp Fingerprint) (uint64, bool) {
	item, err := GetItem(tx, db, fp)
	if nil != err || !item.IsFractional() {
		return 0, false
	}
	return item.Fractional.Total, true
}

func fractional(ctx *runtime.Context, fp Fingerprint) (Item, error) {
	item, err := GetItem(ctx.Tx, ctx.DB, fp)
	if nil != err {
		return item, err
	}
	if !item.IsFractional() {
		return item, ErrNotFractionalized
	}
	return item, nil
}

// Fractionalize - split an item into a managed side token, all of it
// minted to the owner as one fraction without holds
func Fractionalize(ctx *runtime.Context, fp Fingerprint, owner account.AccountId, total uint64, limited bool) (fungible.AssetId, error) {
	item, err := GetItem(ctx.Tx, ctx.DB, fp)
	if nil != err {
		return 0, err
	}
	if item.Owner != owner {
		return 0, ErrWrongOwner
	}
	if item.IsFractional() {
		return 0, ErrAlreadyFractionalized
	}
	if 0 == total {
		return 0, ErrBadValue
	}

	asset, err := fungible.Create(ctx, owner, true)
	if nil != err {
		return 0, err
	}
	err = fungible.Mint(ctx, asset, owner, total)
	if nil != err {
		return 0, err
	}
	if limited {
		err = fungible.SetLimited(ctx, asset)
		if nil != err {
			return 0, err
		}
	}

	item.Fractional = &Fractional{
		Asset: asset,
		Total: total,
	}
	putItem(ctx, item)
	putFraction(ctx, Fraction{
		Owner:       owner,
		Fingerprint: fp,
		Asset:       asset,
		Amount:      total,
		Holds:       []Hold{},
	})
	ctx.Tx.Put(ctx.DB.FractionAssets, storage.Uint32Key(uint32(asset)), fp[:])
	ctx.Deposit(constants.ModuleFnft, Fractionalized{
		Fingerprint: fp,
		Owner:       owner,
		Asset:       asset,
		Total:       total,
		Limited:     limited,
	})
	return asset, nil
}

// MintFraction - extend the supply of an item that is not limited
func MintFraction(ctx *runtime.Context, fp Fingerprint, to account.AccountId, amount uint64) error {
	item, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	if 0 == amount {
		return ErrBadValue
	}
	total, ok := util.AddUint64(item.Fractional.Total, amount)
	if !ok {
		return ErrOverflow
	}

	err = fungible.Mint(ctx, item.Fractional.Asset, to, amount)
	switch err {
	case nil:
	case fungible.ErrMintingLimited:
		return ErrNoPermission
	case fungible.ErrBalanceOverflow:
		return ErrOverflow
	default:
		return err
	}

	f, found := GetFraction(ctx.Tx, ctx.DB, fp, to)
	if !found {
		f = Fraction{
			Owner:       to,
			Fingerprint: fp,
			Asset:       item.Fractional.Asset,
			Holds:       []Hold{},
		}
	}
	f.Amount += amount
	putFraction(ctx, f)

	item.Fractional.Total = total
	putItem(ctx, item)
	ctx.Deposit(constants.ModuleFnft, FractionMinted{
		Fingerprint: fp,
		To:          to,
		Amount:      amount,
		Total:       total,
	})
	return nil
}

// TransferFraction - move part of a free fraction
func TransferFraction(ctx *runtime.Context, fp Fingerprint, from account.AccountId, to account.AccountId, amount uint64) error {
	item, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	source, found := GetFraction(ctx.Tx, ctx.DB, fp, from)
	if !found || amount > source.Amount {
		return ErrInsufficientBalance
	}
	if source.IsHeld() {
		return ErrNoPermission
	}
	if 0 == amount {
		return ErrBadValue
	}
	if from == to {
		return ErrBadTarget
	}

	target, found := GetFraction(ctx.Tx, ctx.DB, fp, to)
	if !found {
		target = Fraction{
			Owner:       to,
			Fingerprint: fp,
			Asset:       item.Fractional.Asset,
			Holds:       []Hold{},
		}
	}
	credit, ok := util.AddUint64(target.Amount, amount)
	if !ok {
		return ErrOverflow
	}

	err = fungible.Transfer(ctx, item.Fractional.Asset, from, to, amount)
	if nil != err {
		return err
	}
	source.Amount -= amount
	target.Amount = credit
	putFraction(ctx, source)
	putFraction(ctx, target)
	ctx.Deposit(constants.ModuleFnft, FractionTransferred{
		Fingerprint: fp,
		From:        from,
		To:          to,
		Amount:      amount,
	})
	return nil
}

// TransferFractionFull - move the whole fraction of an owner
func TransferFractionFull(ctx *runtime.Context, fp Fingerprint, from account.AccountId, to account.AccountId) error {
	_, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	source, found := GetFraction(ctx.Tx, ctx.DB, fp, from)
	if !found {
		return ErrInsufficientBalance
	}
	if source.IsHeld() {
		return ErrNoPermission
	}
	return TransferFraction(ctx, fp, from, to, source.Amount)
}

// HoldFraction - freeze a fraction, a repeated hold is a no-op
func HoldFraction(ctx *runtime.Context, owner account.AccountId, fp Fingerprint, holder HolderId, guard uint32) error {
	_, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	f, found := GetFraction(ctx.Tx, ctx.DB, fp, owner)
	if !found {
		return ErrInsufficientBalance
	}
	h := Hold{Holder: holder, Guard: guard}
	if f.holdIndex(h) >= 0 {
		return nil
	}
	f.Holds = append(f.Holds, h)
	putFraction(ctx, f)
	ctx.Deposit(constants.ModuleFnft, FractionHeld{
		Fingerprint: fp,
		Owner:       owner,
		Holder:      holder,
		Guard:       guard,
	})
	return nil
}

// UnholdFraction - release a hold, releasing an absent hold is a no-op
func UnholdFraction(ctx *runtime.Context, owner account.AccountId, fp Fingerprint, holder HolderId, guard uint32) error {
	_, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	f, found := GetFraction(ctx.Tx, ctx.DB, fp, owner)
	if !found {
		return ErrInsufficientBalance
	}
	h := Hold{Holder: holder, Guard: guard}
	i := f.holdIndex(h)
	if i < 0 {
		return nil
	}
	f.Holds = append(f.Holds[:i], f.Holds[i+1:]...)
	putFraction(ctx, f)
	ctx.Deposit(constants.ModuleFnft, FractionUnheld{
		Fingerprint: fp,
		Owner:       owner,
		Holder:      holder,
		Guard:       guard,
	})
	return nil
}

// BurnFraction - destroy part of a free fraction and shrink the total
//
// not allowed for limited items and never down to a zero total, use
// Fuse to leave the fractional state
func BurnFraction(ctx *runtime.Context, fp Fingerprint, owner account.AccountId, amount uint64) error {
	item, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	f, found := GetFraction(ctx.Tx, ctx.DB, fp, owner)
	if !found || amount > f.Amount {
		return ErrInsufficientBalance
	}
	if f.IsHeld() {
		return ErrNoPermission
	}
	if 0 == amount || amount >= item.Fractional.Total {
		return ErrBadValue
	}
	asset, err := fungible.Get(ctx.Tx, ctx.DB, item.Fractional.Asset)
	if nil != err {
		return err
	}
	if asset.Limited {
		return ErrNoPermission
	}

	err = fungible.Burn(ctx, item.Fractional.Asset, owner, amount)
	if nil != err {
		return err
	}
	f.Amount -= amount
	putFraction(ctx, f)
	item.Fractional.Total -= amount
	putItem(ctx, item)
	ctx.Deposit(constants.ModuleFnft, FractionBurned{
		Fingerprint: fp,
		Owner:       owner,
		Amount:      amount,
		Total:       item.Fractional.Total,
	})
	return nil
}

// Fuse - reassemble an item from its whole supply
//
// the owner must hold every fraction with no holds, the side token is
// burned and destroyed
func Fuse(ctx *runtime.Context, fp Fingerprint, owner account.AccountId) error {
	item, err := fractional(ctx, fp)
	if nil != err {
		return err
	}
	f, found := GetFraction(ctx.Tx, ctx.DB, fp, owner)
	if !found || f.Amount != item.Fractional.Total {
		return ErrInsufficientBalance
	}
	if f.IsHeld() {
		return ErrNoPermission
	}

	asset := item.Fractional.Asset
	err = fungible.Burn(ctx, asset, owner, f.Amount)
	if nil != err {
		return err
	}
	err = fungible.Destroy(ctx, asset)
	if nil != err {
		return err
	}
	f.Amount = 0
	putFraction(ctx, f)
	ctx.Tx.Delete(ctx.DB.FractionAssets, storage.Uint32Key(uint32(asset)))

	if item.Owner != owner {
		c, err := GetCollection(ctx.Tx, ctx.DB, item.Collection)
		if nil != err {
			return err
		}
		err = uniques.Transfer(ctx, c.Class, item.Instance, owner)
		if nil != err {
			return err
		}
	}
	item.Owner = owner
	item.Fractional = nil
	putItem(ctx, item)
	ctx.Deposit(constants.ModuleFnft, Fused{
		Fingerprint: fp,
		Owner:       owner,
		Asset:       asset,
	})
	return nil
}

// ItemByAsset - the item a side token belongs to
func ItemByAsset(tx storage.Transaction, db *storage.Database, asset fungible.AssetId) (Item, error) {
	buffer := tx.Get(db.FractionAssets, storage.Uint32Key(uint32(asset)))
	if nil == buffer {
		return Item{}, ErrUnknownItem
	}
	fp := Fingerprint{}
	copy(fp[:], buffer)
	return GetItem(tx, db, fp)
}
