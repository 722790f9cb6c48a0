// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - the initial world state of a chain
//
// the state is described by a Lua file returning a table, the same
// way as the node configuration, and is applied as block 0
package genesis

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/chain"
	"github.com/bitmark-inc/ipchaind/configuration"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/domain"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fungible"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/vesting"
)

// Balance - an initial holding
type Balance struct {
	Account string `gluamapper:"account" json:"account"`
	Amount  uint64 `gluamapper:"amount" json:"amount"`
}

// Asset - a fungible asset created at genesis, ids are allocated in
// file order starting at 1
type Asset struct {
	Owner    string    `gluamapper:"owner" json:"owner"`
	Managed  bool      `gluamapper:"managed" json:"managed"`
	Limited  bool      `gluamapper:"limited" json:"limited"`
	Balances []Balance `gluamapper:"balances" json:"balances"`
}

// Dao - a tenant present from the start
type Dao struct {
	Label       string   `gluamapper:"label" json:"label"`
	Owner       string   `gluamapper:"owner" json:"owner"`
	Signatories []string `gluamapper:"signatories" json:"signatories"`
	Threshold   uint16   `gluamapper:"threshold" json:"threshold"`
	Metadata    string   `gluamapper:"metadata" json:"metadata"`
}

// Portal - the routing record of a genesis DAO
type Portal struct {
	Dao      string `gluamapper:"dao" json:"dao"`
	Delegate string `gluamapper:"delegate" json:"delegate"`
	Metadata string `gluamapper:"metadata" json:"metadata"`
}

// Domain - a reserved name
type Domain struct {
	Name     string `gluamapper:"name" json:"name"`
	Owner    string `gluamapper:"owner" json:"owner"`
	Metadata string `gluamapper:"metadata" json:"metadata"`
}

// Vesting - a schedule locking part of a native balance
type Vesting struct {
	Account string       `gluamapper:"account" json:"account"`
	Plan    vesting.Plan `gluamapper:"plan" json:"plan"`
}

// Genesis - everything written into block 0
type Genesis struct {
	Chain     string    `gluamapper:"chain" json:"chain"`
	Timestamp uint64    `gluamapper:"timestamp" json:"timestamp"`
	Balances  []Balance `gluamapper:"balances" json:"balances"`
	Assets    []Asset   `gluamapper:"assets" json:"assets"`
	Daos      []Dao     `gluamapper:"daos" json:"daos"`
	Portals   []Portal  `gluamapper:"portals" json:"portals"`
	Domains   []Domain  `gluamapper:"domains" json:"domains"`
	Vesting   []Vesting `gluamapper:"vesting" json:"vesting"`
}

// Load - read a genesis file and check that it is for the expected chain
func Load(fileName string, expectedChain string) (*Genesis, error) {
	g := &Genesis{}
	err := configuration.ParseConfigurationFile(fileName, g)
	if nil != err {
		return nil, err
	}
	if !chain.Valid(g.Chain) || expectedChain != g.Chain {
		return nil, fault.InvalidChain
	}
	return g, nil
}

// Seed - write the state into the genesis block context
//
// order matters: vesting locks need balances and portals need their
// DAO
func (g *Genesis) Seed(ctx *runtime.Context) error {
	log := logger.New("genesis")

	fungible.EnsureNative(ctx)
	for _, b := range g.Balances {
		who, err := account.FromBase58(b.Account)
		if nil != err {
			return err
		}
		err = fungible.Mint(ctx, fungible.Native, who, b.Amount)
		if nil != err {
			return err
		}
	}

	for i, a := range g.Assets {
		owner, err := account.FromBase58(a.Owner)
		if nil != err {
			return err
		}
		id, err := fungible.Create(ctx, owner, a.Managed)
		if nil != err {
			return err
		}
		for _, b := range a.Balances {
			who, err := account.FromBase58(b.Account)
			if nil != err {
				return err
			}
			err = fungible.Mint(ctx, id, who, b.Amount)
			if nil != err {
				return err
			}
		}
		if a.Limited {
			err = fungible.SetLimited(ctx, id)
			if nil != err {
				return err
			}
		}
		log.Debugf("asset[%d]: id: %d", i, id)
	}

	for _, d := range g.Daos {
		id, ok := dao.IdFromString(d.Label)
		if !ok {
			return fault.InvalidGenesis
		}
		owner, err := account.FromBase58(d.Owner)
		if nil != err {
			return err
		}
		signatories, err := accounts(d.Signatories)
		if nil != err {
			return err
		}
		metadata, err := parseMetadata(d.Metadata)
		if nil != err {
			return err
		}
		authority := dao.Authority{
			Signatories: signatories,
			Threshold:   d.Threshold,
		}
		created, err := dao.Create(ctx, owner, id, authority, metadata)
		if nil != err {
			return err
		}
		log.Infof("dao: %q  key: %s", d.Label, created.DaoKey)
	}

	for _, p := range g.Portals {
		id, ok := dao.IdFromString(p.Dao)
		if !ok {
			return fault.InvalidGenesis
		}
		delegate, err := account.FromBase58(p.Delegate)
		if nil != err {
			return err
		}
		metadata, err := parseMetadata(p.Metadata)
		if nil != err {
			return err
		}
		_, err = portal.Create(ctx, dao.KeyOf(id), delegate, metadata)
		if nil != err {
			return err
		}
	}

	for _, d := range g.Domains {
		owner, err := account.FromBase58(d.Owner)
		if nil != err {
			return err
		}
		metadata, err := parseMetadata(d.Metadata)
		if nil != err {
			return err
		}
		_, err = domain.Create(ctx, owner, d.Name, metadata)
		if nil != err {
			return err
		}
	}

	for _, v := range g.Vesting {
		who, err := account.FromBase58(v.Account)
		if nil != err {
			return err
		}
		err = vesting.AddPlan(ctx, who, v.Plan)
		if nil != err {
			return err
		}
	}

	return nil
}

func accounts(list []string) ([]account.AccountId, error) {
	result := make([]account.AccountId, 0, len(list))
	for _, s := range list {
		a, err := account.FromBase58(s)
		if nil != err {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// empty text is no metadata
func parseMetadata(s string) (*dao.Metadata, error) {
	if "" == s {
		return nil, nil
	}
	m := &dao.Metadata{}
	err := m.UnmarshalText([]byte(s))
	if nil != err {
		return nil, err
	}
	return m, nil
}
