// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vesting

import (
	"github.com/bitmark-inc/ipchaind/codec"
)

// Plan - release schedule of a locked amount, times in seconds
type Plan struct {
	Start              uint64 `json:"start" gluamapper:"start"`
	Cliff              uint64 `json:"cliff" gluamapper:"cliff"`
	TotalDuration      uint64 `json:"totalDuration" gluamapper:"total_duration"`
	Interval           uint64 `json:"interval" gluamapper:"interval"`
	InitialAmount      uint64 `json:"initialAmount" gluamapper:"initial_amount"`
	TotalAmount        uint64 `json:"totalAmount" gluamapper:"total_amount"`
	VestingDuringCliff bool   `json:"vestingDuringCliff" gluamapper:"vesting_during_cliff"`
}

func (p Plan) Encode(e *codec.Encoder) {
	e.Uint64(p.Start)
	e.Uint64(p.Cliff)
	e.Uint64(p.TotalDuration)
	e.Uint64(p.Interval)
	e.Uint64(p.InitialAmount)
	e.Uint64(p.TotalAmount)
	e.Bool(p.VestingDuringCliff)
}

func (p *Plan) Decode(d *codec.Decoder) {
	p.Start = d.Uint64()
	p.Cliff = d.Uint64()
	p.TotalDuration = d.Uint64()
	p.Interval = d.Uint64()
	p.InitialAmount = d.Uint64()
	p.TotalAmount = d.Uint64()
	p.VestingDuringCliff = d.Bool()
}

// Validate - structural checks and the minimum amount
func (p Plan) Validate(minimum uint64) error {
	if p.TotalAmount < minimum {
		return ErrAmountLow
	}
	if 0 == p.TotalDuration || 0 == p.Interval ||
		p.TotalDuration < p.Cliff ||
		0 != p.TotalDuration%p.Interval ||
		p.InitialAmount > p.TotalAmount ||
		p.Start+p.TotalDuration < p.Start {
		return ErrInvalidVestingPlan
	}
	return nil
}

// PerInterval - amount released at each interval after the initial
// amount
func (p Plan) PerInterval() uint64 {
	return (p.TotalAmount - p.InitialAmount) / (p.TotalDuration / p.Interval)
}

// Locked - amount still locked at time t
func (p Plan) Locked(t uint64) uint64 {
	if t < p.Start {
		return p.TotalAmount
	}
	if t >= p.Start+p.TotalDuration {
		return 0
	}
	vesting := p.TotalAmount - p.InitialAmount
	if t < p.Start+p.Cliff && !p.VestingDuringCliff {
		return vesting
	}
	intervals := (t - p.Start) / p.Interval
	released := intervals * p.PerInterval()
	if released >= vesting {
		return 0
	}
	return vesting - released
}

// Unlocked - amount released at time t
func (p Plan) Unlocked(t uint64) uint64 {
	return p.TotalAmount - p.Locked(t)
}
