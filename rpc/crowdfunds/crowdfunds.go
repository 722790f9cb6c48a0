// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfunds

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ipchaind/crowdfunding"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/rpc/ratelimit"
	"github.com/bitmark-inc/ipchaind/rpc/reply"
	"github.com/bitmark-inc/ipchaind/storage"
)

const (
	rateLimitCrowdfunding = 200
	rateBurstCrowdfunding = 100
	maximumCount          = 100
)

// Crowdfunding - the sale service
type Crowdfunding struct {
	Log     *logger.L
	Limiter *rate.Limiter
	db      *storage.Database
}

// New - create the Crowdfunding service
func New(log *logger.L, db *storage.Database) *Crowdfunding {
	return &Crowdfunding{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCrowdfunding, rateBurstCrowdfunding),
		db:      db,
	}
}

// GetArguments - a sale id
type GetArguments struct {
	Id crowdfunding.SaleId `json:"id"`
}

// GetReply - a sale and everything contributed to it
type GetReply struct {
	Sale          crowdfunding.Sale           `json:"sale"`
	Contributions []crowdfunding.Contribution `json:"contributions"`
}

// Get - fetch a sale
func (c *Crowdfunding) Get(arguments *GetArguments, result *GetReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	if nil == c.db {
		return fault.DatabaseIsNotSet
	}

	tx := c.db.NewTransaction()
	s, err := crowdfunding.Get(tx, c.db, arguments.Id)
	if nil != err {
		return reply.Error(err)
	}
	result.Sale = s
	result.Contributions = crowdfunding.Contributions(tx, c.db, arguments.Id)
	return nil
}

// ListArguments - a page of sales, optionally of one status
type ListArguments struct {
	Status string `json:"status"`
	Start  int    `json:"start"`
	Count  int    `json:"count"`
}

// ListReply - sales and where the next page starts
type ListReply struct {
	Sales     []crowdfunding.Sale `json:"sales"`
	NextStart int                 `json:"nextStart"`
}

// List - sales in id order
func (c *Crowdfunding) List(arguments *ListArguments, result *ListReply) error {
	if err := ratelimit.LimitN(c.Limiter, arguments.Count, maximumCount); nil != err {
		return err
	}
	if nil == c.db {
		return fault.DatabaseIsNotSet
	}

	list, err := crowdfunding.List(c.db.NewTransaction(), c.db, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	result.Sales = list
	result.NextStart = arguments.Start + len(list)
	return nil
}

// ListByStatus - sales in one lifecycle state
func (c *Crowdfunding) ListByStatus(arguments *ListArguments, result *ListReply) error {
	if err := ratelimit.LimitN(c.Limiter, arguments.Count, maximumCount); nil != err {
		return err
	}
	if nil == c.db {
		return fault.DatabaseIsNotSet
	}

	status, err := crowdfunding.StatusFromString(arguments.Status)
	if nil != err {
		return reply.Error(err)
	}
	list, err := crowdfunding.ListByStatus(c.db.NewTransaction(), c.db, status, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	result.Sales = list
	result.NextStart = arguments.Start + len(list)
	return nil
}
