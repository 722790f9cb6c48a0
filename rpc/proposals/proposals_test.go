// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposals_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/proposal"
	"github.com/bitmark-inc/ipchaind/rpc/proposals"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func remark(text string) runtime.Call {
	return runtime.NewCall(constants.ModuleSystem, runtime.FnRemark, runtime.Remark{Data: []byte(text)})
}

// alice proposes three remarks that need bob as well
func setup(t *testing.T) (*proposals.Proposal, []proposal.ProposalId) {
	db := fixtures.NewDatabase(t)
	d := runtime.NewDispatcher()
	runtime.RegisterSystem(d)
	dao.Register(d)
	proposal.Register(d, dao.Registry{})
	ctx := fixtures.NewContext(db, d, 1, 100)

	id, _ := dao.IdFromString("acme")
	authority := dao.Authority{
		Signatories: []account.AccountId{fixtures.Alice.Account(), fixtures.Bob.Account()},
		Threshold:   2,
	}
	acme, err := dao.Create(ctx, fixtures.Alice.Account(), id, authority, nil)
	require.Nil(t, err, "create dao")

	ids := make([]proposal.ProposalId, 0, 3)
	for i, text := range []string{"one", "two", "three"} {
		c := ctx.ForExtrinsic(uint32(i), runtime.HashOf([]byte(text)), 0, runtime.Root())
		batch := []proposal.Item{
			{Signer: acme.DaoKey, Call: remark(text)},
		}
		pid, err := proposal.Propose(c, fixtures.Alice.Account(), batch, nil)
		require.Nil(t, err, "propose: %s", text)
		ids = append(ids, pid)
	}
	require.Nil(t, ctx.Tx.Flush(), "flush")

	return proposals.New(logger.New(fixtures.LogCategory), db), ids
}

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s, ids := setup(t)

	var reply proposals.GetReply
	err := s.Get(&proposals.GetArguments{Id: ids[1]}, &reply)
	require.Nil(t, err, "get")
	assert.Equal(t, ids[1], reply.Proposal.Id, "id")

	err = s.Get(&proposals.GetArguments{}, &reply)
	assert.Equal(t, fault.DiscriminantOf(proposal.ErrNotFound).String(), err.Error(), "unknown")
}

func TestListByCreator(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s, ids := setup(t)

	var reply proposals.ListReply
	err := s.ListByCreator(&proposals.ListByCreatorArguments{Creator: fixtures.Alice.Account(), Start: 0, Count: 2}, &reply)
	require.Nil(t, err, "first page")
	require.Equal(t, 2, len(reply.Proposals), "page")
	assert.Equal(t, ids[0], reply.Proposals[0].Id, "creation order")
	assert.Equal(t, 2, reply.NextStart, "next")

	err = s.ListByCreator(&proposals.ListByCreatorArguments{Creator: fixtures.Alice.Account(), Start: 2, Count: 2}, &reply)
	require.Nil(t, err, "second page")
	require.Equal(t, 1, len(reply.Proposals), "rest")
	assert.Equal(t, ids[2], reply.Proposals[0].Id, "last")

	err = s.ListByCreator(&proposals.ListByCreatorArguments{Creator: fixtures.Bob.Account(), Start: 0, Count: 10}, &reply)
	require.Nil(t, err, "bob")
	assert.Equal(t, 0, len(reply.Proposals), "none")

	err = s.ListByCreator(&proposals.ListByCreatorArguments{Creator: fixtures.Alice.Account(), Start: -1, Count: 10}, &reply)
	assert.Equal(t, fault.InvalidCursor, err, "bad start")
}
