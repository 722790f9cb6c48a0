// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// Get - fetch a DAO by id
func Get(tx storage.Transaction, db *storage.Database, id DaoId) (Dao, error) {
	dao := Dao{}
	buffer := tx.Get(db.Daos, id[:])
	if nil == buffer {
		return dao, ErrUnknownDao
	}
	err := codec.Unmarshal(buffer, &dao)
	if nil != err {
		logger.Panicf("dao: %s is corrupt: %s", id, err)
	}
	return dao, nil
}

// GetMulti - fetch several DAOs, missing ones are skipped
func GetMulti(tx storage.Transaction, db *storage.Database, ids []DaoId) []Dao {
	result := make([]Dao, 0, len(ids))
	for _, id := range ids {
		dao, err := Get(tx, db, id)
		if nil == err {
			result = append(result, dao)
		}
	}
	return result
}

// List - a page of DAOs in id order
func List(tx storage.Transaction, db *storage.Database, start int, count int) ([]Dao, error) {
	result := make([]Dao, 0)
	_, err := storage.Page(tx, db.Daos, nil, start, count, func(key []byte, value []byte) {
		dao := Dao{}
		err := codec.Unmarshal(value, &dao)
		if nil != err {
			logger.Panicf("dao: %x is corrupt: %s", key, err)
		}
		result = append(result, dao)
	})
	return result, err
}

// IdOfKey - the tenant lookup from a dao key to its id
func IdOfKey(tx storage.Transaction, db *storage.Database, key account.AccountId) (DaoId, bool) {
	id := DaoId{}
	buffer := tx.Get(db.DaoKeys, key[:])
	if nil == buffer {
		return id, false
	}
	copy(id[:], buffer)
	return id, true
}

// IdOfAuthorityKey - the first DAO controlled by a multisig authority
// key, DAOs with the same signatories and threshold share the key
func IdOfAuthorityKey(tx storage.Transaction, db *storage.Database, key account.AccountId) (DaoId, bool) {
	id := DaoId{}
	found := false
	tx.Range(db.DaoAuthorities, key[:], func(k []byte, value []byte) bool {
		copy(id[:], value)
		found = true
		return false
	})
	return id, found
}

// only derived keys are indexed, a single signer authority key is an
// ordinary account that signs for itself
func putAuthorityKey(ctx *runtime.Context, dao Dao) {
	if 0 != dao.Authority.Threshold {
		ctx.Tx.Put(ctx.DB.DaoAuthorities, storage.Key(dao.AuthorityKey[:], dao.Id[:]), dao.Id[:])
	}
}

func deleteAuthorityKey(ctx *runtime.Context, dao Dao) {
	if 0 != dao.Authority.Threshold {
		ctx.Tx.Delete(ctx.DB.DaoAuthorities, storage.Key(dao.AuthorityKey[:], dao.Id[:]))
	}
}

func put(ctx *runtime.Context, dao Dao) {
	ctx.Tx.Put(ctx.DB.Daos, dao.Id[:], codec.Marshal(dao))
}

// Create - register a new DAO
//
// the signatories are sorted and deduplicated first
func Create(ctx *runtime.Context, owner account.AccountId, id DaoId, authority Authority, metadata *Metadata) (Dao, error) {
	if ctx.Tx.Has(ctx.DB.Daos, id[:]) {
		return Dao{}, ErrDaoExists
	}
	authority.Signatories = account.SortUnique(authority.Signatories)
	err := authority.Validate(ctx.Parameters.MaxSignatories)
	if nil != err {
		return Dao{}, err
	}
	key := KeyOf(id)
	if ctx.Tx.Has(ctx.DB.DaoKeys, key[:]) {
		return Dao{}, ErrDaoKeyInUse
	}

	dao := Dao{
		Id:           id,
		Owner:        owner,
		Authority:    authority,
		AuthorityKey: authority.Key(),
		DaoKey:       key,
		Metadata:     metadata,
	}
	put(ctx, dao)
	putAuthorityKey(ctx, dao)
	ctx.Tx.Put(ctx.DB.DaoKeys, key[:], id[:])
	ctx.Deposit(constants.ModuleDao, DaoCreate{
		Id:           id,
		Owner:        owner,
		DaoKey:       key,
		AuthorityKey: dao.AuthorityKey,
		Signatories:  authority.Signatories,
		Threshold:    authority.Threshold,
	})
	return dao, nil
}

// from a dao key origin to its DAO
func byOrigin(ctx *runtime.Context) (Dao, error) {
	who, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return Dao{}, err
	}
	id, ok := IdOfKey(ctx.Tx, ctx.DB, who)
	if !ok {
		return Dao{}, ErrNotDaoOrigin
	}
	return Get(ctx.Tx, ctx.DB, id)
}

// AlterAuthority - change the signatories of the DAO of the origin
func AlterAuthority(ctx *runtime.Context, change Change) error {
	dao, err := byOrigin(ctx)
	if nil != err {
		return err
	}
	authority, err := change.Apply(dao.Authority)
	if nil != err {
		return err
	}
	authority.Signatories = account.SortUnique(authority.Signatories)
	err = authority.Validate(ctx.Parameters.MaxSignatories)
	if nil != err {
		return err
	}
	deleteAuthorityKey(ctx, dao)
	dao.Authority = authority
	dao.AuthorityKey = authority.Key()
	put(ctx, dao)
	putAuthorityKey(ctx, dao)
	ctx.Deposit(constants.ModuleDao, DaoAlterAuthority{
		Id:           dao.Id,
		AuthorityKey: dao.AuthorityKey,
		Signatories:  authority.Signatories,
		Threshold:    authority.Threshold,
	})
	return nil
}

// UpdateMetadata - set the metadata of the DAO of the origin
func UpdateMetadata(ctx *runtime.Context, metadata *Metadata) error {
	dao, err := byOrigin(ctx)
	if nil != err {
		return err
	}
	dao.Metadata = metadata
	put(ctx, dao)
	ctx.Deposit(constants.ModuleDao, DaoMetadataUpdated{
		Id:       dao.Id,
		Metadata: metadata,
	})
	return nil
}

// OnBehalf - dispatch a call as the DAO
//
// the origin must be the authority key, a threshold authority gets
// there through a proposal whose signer is the authority key
func OnBehalf(ctx *runtime.Context, id DaoId, call runtime.Call) error {
	dao, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return err
	}
	err = ctx.Origin.EnsureSignedBy(dao.AuthorityKey)
	if nil != err {
		return ErrNotAuthority
	}
	err = ctx.Dispatch(runtime.Signed(dao.DaoKey), call)
	if nil != err {
		return err
	}
	ctx.Deposit(constants.ModuleDao, DaoDispatched{
		Id:   id,
		Call: call.Hash(),
	})
	return nil
}

// Registry - the proposal engine view of the DAOs
type Registry struct{}

// Authority - signatories of the DAO whose dao key or authority key is
// the signer
func (Registry) Authority(tx storage.Transaction, db *storage.Database, signer account.AccountId) ([]account.AccountId, int, bool) {
	id, ok := IdOfKey(tx, db, signer)
	if !ok {
		id, ok = IdOfAuthorityKey(tx, db, signer)
	}
	if !ok {
		return nil, 0, false
	}
	dao, err := Get(tx, db, id)
	if nil != err {
		return nil, 0, false
	}
	return dao.Authority.Signatories, dao.Authority.Approvals(), true
}
