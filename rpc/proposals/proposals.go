// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposals

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/proposal"
	"github.com/bitmark-inc/ipchaind/rpc/ratelimit"
	"github.com/bitmark-inc/ipchaind/rpc/reply"
	"github.com/bitmark-inc/ipchaind/storage"
)

const (
	rateLimitProposal = 200
	rateBurstProposal = 100
	maximumCount      = 100
)

// Proposal - the pending proposal service
type Proposal struct {
	Log     *logger.L
	Limiter *rate.Limiter
	db      *storage.Database
}

// New - create the Proposal service
func New(log *logger.L, db *storage.Database) *Proposal {
	return &Proposal{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitProposal, rateBurstProposal),
		db:      db,
	}
}

// GetArguments - a proposal id
type GetArguments struct {
	Id proposal.ProposalId `json:"id"`
}

// GetReply - a pending proposal
type GetReply struct {
	Proposal proposal.Proposal `json:"proposal"`
}

// Get - fetch a pending proposal, resolved ones no longer exist
func (p *Proposal) Get(arguments *GetArguments, result *GetReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == p.db {
		return fault.DatabaseIsNotSet
	}

	record, err := proposal.Get(p.db.NewTransaction(), p.db, arguments.Id)
	if nil != err {
		return reply.Error(err)
	}
	result.Proposal = *record
	return nil
}

// ListByCreatorArguments - a page of the proposals of an author
type ListByCreatorArguments struct {
	Creator account.AccountId `json:"creator"`
	Start   int               `json:"start"`
	Count   int               `json:"count"`
}

// ListReply - proposals and where the next page starts
type ListReply struct {
	Proposals []proposal.Proposal `json:"proposals"`
	NextStart int                 `json:"nextStart"`
}

// ListByCreator - pending proposals of an author in creation order
func (p *Proposal) ListByCreator(arguments *ListByCreatorArguments, result *ListReply) error {
	if err := ratelimit.LimitN(p.Limiter, arguments.Count, maximumCount); nil != err {
		return err
	}
	if nil == p.db {
		return fault.DatabaseIsNotSet
	}

	list, err := proposal.ListByCreator(p.db.NewTransaction(), p.db, arguments.Creator, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	result.Proposals = list
	result.NextStart = arguments.Start + len(list)
	return nil
}
