// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modules - assembles the runtime of the chain from its modules
package modules

import (
	"github.com/bitmark-inc/ipchaind/agreement"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/crowdfunding"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/domain"
	"github.com/bitmark-inc/ipchaind/executive"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fnft"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/proposal"
	"github.com/bitmark-inc/ipchaind/review"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/vesting"
)

// Runtime - the routing table and signed extension pipeline
type Runtime struct {
	Dispatcher *runtime.Dispatcher
	Pipeline   extrinsic.Pipeline
}

// New - every module registered in index order
func New() *Runtime {
	d := runtime.NewDispatcher()
	runtime.RegisterSystem(d)
	fungible.Register(d)
	fnft.Register(d)
	proposal.Register(d, dao.Registry{})
	dao.Register(d)
	crowdfunding.Register(d)
	portal.Register(d)
	vesting.Register(d)
	domain.Register(d)
	review.Register(d)
	agreement.Register(d)

	return &Runtime{
		Dispatcher: d,
		Pipeline:   Pipeline(),
	}
}

// Pipeline - the canonical signed extensions, the order is part of the
// signing payload
func Pipeline() extrinsic.Pipeline {
	return extrinsic.Pipeline{
		extrinsic.CheckSpecVersion{Version: constants.SpecVersion},
		extrinsic.CheckTxVersion{Version: constants.TransactionVersion},
		extrinsic.CheckGenesis{},
		extrinsic.CheckMortality{},
		extrinsic.CheckNonce{},
		extrinsic.CheckWeight{},
		extrinsic.ChargeTransactionPayment{Payer: fungible.FeePayer{}},
		portal.CheckPortalExt{},
	}
}

// NewExecutive - an executive running this runtime over a database
func NewExecutive(db *storage.Database, parameters *runtime.Parameters) *executive.Executive {
	rt := New()
	return executive.New(db, rt.Dispatcher, parameters, rt.Pipeline)
}
