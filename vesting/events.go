// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
)

// VestingPlanAdded - a new schedule on an account
type VestingPlanAdded struct {
	Account account.AccountId `json:"account"`
	Plan    Plan              `json:"plan"`
}

func (ev VestingPlanAdded) EventName() string { return "VestingPlanAdded" }
func (ev VestingPlanAdded) Encode(e *codec.Encoder) {
	ev.Account.Encode(e)
	ev.Plan.Encode(e)
}

// VestingUpdated - the amount still locked
type VestingUpdated struct {
	Account  account.AccountId `json:"account"`
	Unvested uint64            `json:"unvested"`
}

func (ev VestingUpdated) EventName() string { return "VestingUpdated" }
func (ev VestingUpdated) Encode(e *codec.Encoder) {
	ev.Account.Encode(e)
	e.Uint64(ev.Unvested)
}

// VestingCompleted - everything released, plan removed
type VestingCompleted struct {
	Account account.AccountId `json:"account"`
}

func (ev VestingCompleted) EventName() string { return "VestingCompleted" }
func (ev VestingCompleted) Encode(e *codec.Encoder) {
	ev.Account.Encode(e)
}
