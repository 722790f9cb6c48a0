// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sealer - local block production for development chains
//
// on a production chain blocks come from the external block producer,
// the sealer stands in for it by building a block from the pool on a
// fixed interval and applying it straight away
package sealer

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/executive"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/reservoir"
)

// DefaultInterval - block time when the configuration is silent
const DefaultInterval = 6 * time.Second

// Configuration - the sealing block of the configuration file
type Configuration struct {
	Enabled  bool `gluamapper:"enabled" json:"enabled"`
	Interval int  `gluamapper:"interval" json:"interval"` // seconds
}

// Period - the configured interval as a duration
func (c Configuration) Period() time.Duration {
	if c.Interval <= 0 {
		return DefaultInterval
	}
	return time.Duration(c.Interval) * time.Second
}

// Sealer - builds and applies blocks from the pool
type Sealer struct {
	log       *logger.L
	executive *executive.Executive
	pool      *reservoir.Reservoir
	interval  time.Duration
	sealed    uint64
	failed    uint64

	// for tests
	clock func() time.Time
}

// New - create a sealer
func New(ex *executive.Executive, pool *reservoir.Reservoir, interval time.Duration) (*Sealer, error) {
	log := logger.New("sealer")
	if nil == log {
		return nil, fault.InvalidLoggerChannel
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sealer{
		log:       log,
		executive: ex,
		pool:      pool,
		interval:  interval,
		clock:     time.Now,
	}, nil
}

// Seal - build one block on top of the best block and apply it
//
// included extrinsics leave the pool, passed over ones are rechecked
func (s *Sealer) Seal() (*blockrecord.Block, error) {
	candidates := s.pool.Candidates(blockrecord.MaximumExtrinsics)
	timestamp := uint64(s.clock().Unix())

	b, rejected, err := s.executive.BuildBlock(candidates, timestamp)
	if nil != err {
		atomic.AddUint64(&s.failed, 1)
		return nil, err
	}

	_, err = s.executive.ApplyBlock(b)
	if nil != err {
		atomic.AddUint64(&s.failed, 1)
		s.log.Errorf("apply: %d  error: %s", b.Header.Number, err)
		return nil, err
	}
	atomic.AddUint64(&s.sealed, 1)

	s.pool.Remove(b.Extrinsics)
	if len(rejected) > 0 {
		dropped := s.pool.Prune(rejected)
		s.log.Debugf("block: %d  passed over: %d  dropped: %d", b.Header.Number, len(rejected), dropped)
	}
	return b, nil
}

// Counts - blocks sealed and attempts that failed
func (s *Sealer) Counts() (uint64, uint64) {
	return atomic.LoadUint64(&s.sealed), atomic.LoadUint64(&s.failed)
}

// Run - background sealing loop
func (s *Sealer) Run(args interface{}, shutdown <-chan struct{}) {

	log := s.log

	log.Infof("starting…  interval: %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-ticker.C:
			b, err := s.Seal()
			if nil != err {
				log.Warnf("seal error: %s", err)
				continue
			}
			log.Debugf("sealed: %d  extrinsics: %d", b.Header.Number, len(b.Extrinsics))
		}
	}
	log.Info("shutting down…")
}
