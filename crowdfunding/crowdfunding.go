// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunding

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/util"
)

// kinds of schedule entry, activation sorts first at equal times
const (
	scheduleActivate  = 0
	scheduleTerminate = 1
)

// contributions: id ++ owner
func contributionKey(id SaleId, owner account.AccountId) []byte {
	return storage.Key(id[:], owner[:])
}

// status index: status ++ id
func statusKey(status Status, id SaleId) []byte {
	return storage.Key([]byte{byte(status)}, id[:])
}

// schedule: time ++ id ++ kind
func scheduleKey(time uint64, id SaleId, kind byte) []byte {
	return storage.Key(storage.Uint64Key(time), id[:], []byte{kind})
}

// Get - a sale by id
func Get(tx storage.Transaction, db *storage.Database, id SaleId) (Sale, error) {
	s := Sale{}
	buffer := tx.Get(db.Sales, id[:])
	if nil == buffer {
		return s, ErrUnknownSale
	}
	err := codec.Unmarshal(buffer, &s)
	if nil != err {
		logger.Panicf("crowdfunding: sale: %s is corrupt: %s", id, err)
	}
	return s, nil
}

// List - sales in id order
func List(tx storage.Transaction, db *storage.Database, start int, count int) ([]Sale, error) {
	result := make([]Sale, 0)
	_, err := storage.Page(tx, db.Sales, nil, start, count, func(key []byte, value []byte) {
		s := Sale{}
		err := codec.Unmarshal(value, &s)
		if nil != err {
			logger.Panicf("crowdfunding: sale: %x is corrupt: %s", key, err)
		}
		result = append(result, s)
	})
	return result, err
}

// ListByStatus - sales currently in a status, in id order
func ListByStatus(tx storage.Transaction, db *storage.Database, status Status, start int, count int) ([]Sale, error) {
	if status > Expired {
		return nil, ErrUnknownStatus
	}
	result := make([]Sale, 0)
	_, err := storage.Page(tx, db.SalesByStatus, []byte{byte(status)}, start, count, func(key []byte, value []byte) {
		id := SaleId{}
		copy(id[:], key[1:])
		s, err := Get(tx, db, id)
		if nil != err {
			logger.Panicf("crowdfunding: status index: %x points to missing sale", key)
		}
		result = append(result, s)
	})
	return result, err
}

// Contributions - the ledger of a sale sorted by owner
func Contributions(tx storage.Transaction, db *storage.Database, id SaleId) []Contribution {
	result := make([]Contribution, 0)
	tx.Range(db.Contributions, id[:], func(key []byte, value []byte) bool {
		c := Contribution{}
		err := codec.Unmarshal(value, &c)
		if nil != err {
			logger.Panicf("crowdfunding: contribution: %x is corrupt: %s", key, err)
		}
		result = append(result, c)
		return true
	})
	return result
}

// ContributionOf - what one account has put into a sale
func ContributionOf(tx storage.Transaction, db *storage.Database, id SaleId, owner account.AccountId) (Contribution, bool) {
	c := Contribution{}
	buffer := tx.Get(db.Contributions, contributionKey(id, owner))
	if nil == buffer {
		return c, false
	}
	err := codec.Unmarshal(buffer, &c)
	if nil != err {
		logger.Panicf("crowdfunding: contribution: %s/%s is corrupt: %s", id, owner, err)
	}
	return c, true
}

func put(ctx *runtime.Context, s Sale) {
	ctx.Tx.Put(ctx.DB.Sales, s.Id[:], codec.Marshal(s))
}

// move a sale to its next status and keep the index in step
func setStatus(ctx *runtime.Context, s *Sale, status Status) {
	if status <= s.Status {
		logger.Panicf("crowdfunding: sale: %s cannot go from %s to %s", s.Id, s.Status, status)
	}
	ctx.Tx.Delete(ctx.DB.SalesByStatus, statusKey(s.Status, s.Id))
	ctx.Tx.Put(ctx.DB.SalesByStatus, statusKey(status, s.Id), []byte{})
	s.Status = status
}

// Create - an inactive sale with the shares taken into custody
func Create(ctx *runtime.Context, owner account.AccountId, s Sale) (Sale, error) {
	if ctx.Tx.Has(ctx.DB.Sales, s.Id[:]) {
		return s, ErrSaleExists
	}
	if s.Start >= s.End {
		return s, ErrInvalidPeriod
	}
	if s.SoftCap.Cmp(s.HardCap) > 0 {
		return s, ErrInvalidCaps
	}
	if 0 == len(s.Shares) {
		return s, ErrNoShares
	}
	err := ensureTradeable(ctx, s.Asset)
	if nil != err {
		return s, err
	}

	for _, share := range s.Shares {
		if 0 == share.Amount {
			return s, ErrZeroShare
		}
		err := ensureTradeable(ctx, share.Id)
		if nil != err {
			return s, err
		}
		err = fungible.Reserve(ctx, share.Id, s.Id.Bucket(), owner, share.Amount)
		if nil != err {
			return s, err
		}
	}

	s.Owner = owner
	s.Total = 0
	s.Status = Inactive
	s.CreatedBlock = ctx.Block
	s.CreatedIndex = ctx.ExtrinsicIndex()
	put(ctx, s)
	ctx.Tx.Put(ctx.DB.SalesByStatus, statusKey(Inactive, s.Id), []byte{})
	ctx.Tx.Put(ctx.DB.SaleSchedule, scheduleKey(s.Start, s.Id, scheduleActivate), []byte{})
	ctx.Tx.Put(ctx.DB.SaleSchedule, scheduleKey(s.End, s.Id, scheduleTerminate), []byte{})

	ctx.Deposit(constants.ModuleCrowdfunding, SimpleCrowdfundingCreated{
		Id:      s.Id,
		Owner:   owner,
		Asset:   s.Asset,
		Start:   s.Start,
		End:     s.End,
		SoftCap: s.SoftCap,
		HardCap: s.HardCap,
		Shares:  s.Shares,
	})
	return s, nil
}

// side tokens only move through their own engine
func ensureTradeable(ctx *runtime.Context, id fungible.AssetId) error {
	a, err := fungible.Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	if a.Managed {
		return ErrManagedAsset
	}
	return nil
}

// Invest - reserve a contribution, clamped to the hard cap
//
// reaching the hard cap finishes the sale at once
func Invest(ctx *runtime.Context, who account.AccountId, id SaleId, contribution fungible.Amount) (uint64, error) {
	s, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return 0, err
	}
	if Active != s.Status {
		return 0, ErrNotActive
	}
	if contribution.Id != s.Asset {
		return 0, ErrWrongAsset
	}

	amount := contribution.Amount
	if remaining, bounded := s.remaining(); bounded {
		amount = util.MinUint64(amount, remaining)
	}
	if 0 == amount {
		return 0, ErrZeroContribution
	}
	total, ok := util.AddUint64(s.Total, amount)
	if !ok {
		return 0, fungible.ErrBalanceOverflow
	}

	err = fungible.Reserve(ctx, s.Asset, id.Bucket(), who, amount)
	if nil != err {
		return 0, err
	}

	c, _ := ContributionOf(ctx.Tx, ctx.DB, id, who)
	c.Sale = id
	c.Owner = who
	c.Amount += amount
	c.Time = ctx.Timestamp
	ctx.Tx.Put(ctx.DB.Contributions, contributionKey(id, who), codec.Marshal(c))

	s.Total = total
	ctx.Deposit(constants.ModuleCrowdfunding, Invested{
		Id:     id,
		Who:    who,
		Amount: amount,
		Total:  s.Total,
	})

	if remaining, bounded := s.remaining(); bounded && 0 == remaining {
		return amount, finish(ctx, &s)
	}
	put(ctx, s)
	return amount, nil
}

// pay the shares out pro rata, floor for each contributor and the dust
// back to the owner, then pay the contributions to the owner
func finish(ctx *runtime.Context, s *Sale) error {
	bucket := s.Id.Bucket()
	contributions := Contributions(ctx.Tx, ctx.DB, s.Id)

	for _, share := range s.Shares {
		paid := uint64(0)
		for _, c := range contributions {
			if 0 == s.Total {
				break
			}
			portion, ok := util.MulDivFloor(share.Amount, c.Amount, s.Total)
			if !ok || 0 == portion {
				continue
			}
			err := fungible.RepatriateReserved(ctx, share.Id, bucket, s.Owner, c.Owner, portion)
			if nil != err {
				return err
			}
			paid += portion
		}
		dust := share.Amount - paid
		if dust > 0 {
			err := fungible.Unreserve(ctx, share.Id, bucket, s.Owner, dust)
			if nil != err {
				return err
			}
		}
	}

	for _, c := range contributions {
		err := fungible.RepatriateReserved(ctx, s.Asset, bucket, c.Owner, s.Owner, c.Amount)
		if nil != err {
			return err
		}
	}

	setStatus(ctx, s, Finished)
	put(ctx, *s)
	ctx.Deposit(constants.ModuleCrowdfunding, SimpleCrowdfundingFinished{
		Id:    s.Id,
		Total: s.Total,
	})
	return nil
}

// refund every contribution and return the shares
func expire(ctx *runtime.Context, s *Sale) error {
	bucket := s.Id.Bucket()
	for _, c := range Contributions(ctx.Tx, ctx.DB, s.Id) {
		err := fungible.Unreserve(ctx, s.Asset, bucket, c.Owner, c.Amount)
		if nil != err {
			return err
		}
	}
	for _, share := range s.Shares {
		err := fungible.Unreserve(ctx, share.Id, bucket, s.Owner, share.Amount)
		if nil != err {
			return err
		}
	}

	setStatus(ctx, s, Expired)
	put(ctx, *s)
	ctx.Deposit(constants.ModuleCrowdfunding, SimpleCrowdfundingExpired{
		Id:    s.Id,
		Total: s.Total,
	})
	return nil
}

type scheduled struct {
	key  []byte
	id   SaleId
	kind byte
}

// Process - run every schedule entry due at the block time in key order
func Process(ctx *runtime.Context) error {
	now := storage.Uint64Key(ctx.Timestamp)
	due := make([]scheduled, 0)
	ctx.Tx.Range(ctx.DB.SaleSchedule, nil, func(key []byte, value []byte) bool {
		if len(key) != 8+SaleIdSize+1 {
			logger.Panicf("crowdfunding: schedule: bad key: %x", key)
		}
		if bytes.Compare(key[:8], now) > 0 {
			return false
		}
		item := scheduled{
			key:  append([]byte{}, key...),
			kind: key[8+SaleIdSize],
		}
		copy(item.id[:], key[8:8+SaleIdSize])
		due = append(due, item)
		return true
	})

	for _, item := range due {
		ctx.Tx.Delete(ctx.DB.SaleSchedule, item.key)
		s, err := Get(ctx.Tx, ctx.DB, item.id)
		if nil != err {
			logger.Panicf("crowdfunding: schedule: missing sale: %s", item.id)
		}
		switch item.kind {
		case scheduleActivate:
			if Inactive != s.Status {
				continue
			}
			setStatus(ctx, &s, Active)
			put(ctx, s)
			ctx.Deposit(constants.ModuleCrowdfunding, SimpleCrowdfundingActivated{Id: s.Id})

		case scheduleTerminate:
			if Active != s.Status {
				continue
			}
			if s.reachedSoftCap() {
				err = finish(ctx, &s)
			} else {
				err = expire(ctx, &s)
			}
			if nil != err {
				return err
			}
		}
	}
	return nil
}
