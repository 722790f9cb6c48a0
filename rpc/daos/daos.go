// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package daos

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/rpc/ratelimit"
	"github.com/bitmark-inc/ipchaind/rpc/reply"
	"github.com/bitmark-inc/ipchaind/storage"
)

const (
	rateLimitDAO = 200
	rateBurstDAO = 100
	maximumCount = 100
)

// DAO - the tenant registry service
type DAO struct {
	Log     *logger.L
	Limiter *rate.Limiter
	db      *storage.Database
}

// New - create the DAO service
func New(log *logger.L, db *storage.Database) *DAO {
	return &DAO{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitDAO, rateBurstDAO),
		db:      db,
	}
}

// GetArguments - a DAO id, either its label or 0x hex
type GetArguments struct {
	Id dao.DaoId `json:"id"`
}

// GetReply - one DAO
type GetReply struct {
	Dao dao.Dao `json:"dao"`
}

// Get - fetch a DAO
func (d *DAO) Get(arguments *GetArguments, result *GetReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	if nil == d.db {
		return fault.DatabaseIsNotSet
	}

	record, err := dao.Get(d.db.NewTransaction(), d.db, arguments.Id)
	if nil != err {
		return reply.Error(err)
	}
	result.Dao = record
	return nil
}

// GetMultiArguments - several DAO ids
type GetMultiArguments struct {
	Ids []dao.DaoId `json:"ids"`
}

// ListReply - DAOs and where the next page starts
type ListReply struct {
	Daos      []dao.Dao `json:"daos"`
	NextStart int       `json:"nextStart"`
}

// GetMulti - fetch several DAOs, unknown ids are skipped
func (d *DAO) GetMulti(arguments *GetMultiArguments, result *ListReply) error {
	if err := ratelimit.LimitN(d.Limiter, len(arguments.Ids), maximumCount); nil != err {
		return err
	}
	if nil == d.db {
		return fault.DatabaseIsNotSet
	}

	result.Daos = dao.GetMulti(d.db.NewTransaction(), d.db, arguments.Ids)
	return nil
}

// ListArguments - a page of DAOs
type ListArguments struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// List - DAOs in id order
func (d *DAO) List(arguments *ListArguments, result *ListReply) error {
	if err := ratelimit.LimitN(d.Limiter, arguments.Count, maximumCount); nil != err {
		return err
	}
	if nil == d.db {
		return fault.DatabaseIsNotSet
	}

	list, err := dao.List(d.db.NewTransaction(), d.db, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	result.Daos = list
	result.NextStart = arguments.Start + len(list)
	return nil
}

// ByKeyArguments - the derived account of a DAO
type ByKeyArguments struct {
	Key account.AccountId `json:"key"`
}

// ByKey - find the DAO that owns a dao key
func (d *DAO) ByKey(arguments *ByKeyArguments, result *GetReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	if nil == d.db {
		return fault.DatabaseIsNotSet
	}

	tx := d.db.NewTransaction()
	id, ok := dao.IdOfKey(tx, d.db, arguments.Key)
	if !ok {
		return reply.Error(dao.ErrUnknownDao)
	}
	record, err := dao.Get(tx, d.db, id)
	if nil != err {
		return reply.Error(err)
	}
	result.Dao = record
	return nil
}
