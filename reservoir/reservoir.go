// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// defaults when the configuration is silent
const (
	DefaultMaximum = 4096
	DefaultExpiry  = 60 * time.Minute
)

// Validator - checks an extrinsic against the best state
type Validator interface {
	Validate(raw []byte, timestamp uint64) error
}

type entry struct {
	raw     []byte
	signed  bool
	arrived time.Time
}

// Counts - number of extrinsics in the pool by kind
type Counts struct {
	Signed   int `json:"signed"`
	Unsigned int `json:"unsigned"`
}

// Reservoir - pool of pending extrinsics
type Reservoir struct {
	sync.Mutex
	log       *logger.L
	validator Validator
	maximum   int
	expiry    time.Duration
	entries   map[runtime.Hash]*entry
	order     []runtime.Hash

	// for tests
	clock func() time.Time
}

// New - create an empty pool
func New(validator Validator, maximum int, expiry time.Duration) *Reservoir {
	if maximum <= 0 {
		maximum = DefaultMaximum
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Reservoir{
		log:       logger.New("reservoir"),
		validator: validator,
		maximum:   maximum,
		expiry:    expiry,
		entries:   make(map[runtime.Hash]*entry),
		clock:     time.Now,
	}
}

// Submit - validate and queue an encoded extrinsic
//
// validation runs without the pool lock held as the validator takes the
// executive lock and the executive calls back into the pool
func (r *Reservoir) Submit(raw []byte) (runtime.Hash, error) {
	hash := runtime.HashOf(raw)

	r.Lock()
	_, found := r.entries[hash]
	full := len(r.entries) >= r.maximum
	r.Unlock()

	if found {
		return hash, fault.DuplicateTransaction
	}
	if full {
		return hash, fault.PoolFull
	}

	x, err := extrinsic.Parse(raw)
	if nil != err {
		return hash, err
	}

	now := r.clock()
	err = r.validator.Validate(raw, uint64(now.Unix()))
	if nil != err {
		r.log.Debugf("reject: %s  error: %s", hash, err)
		return hash, err
	}

	r.Lock()
	defer r.Unlock()

	if _, found := r.entries[hash]; found {
		return hash, fault.DuplicateTransaction
	}
	if len(r.entries) >= r.maximum {
		return hash, fault.PoolFull
	}
	r.entries[hash] = &entry{
		raw:     raw,
		signed:  x.IsSigned(),
		arrived: now,
	}
	r.order = append(r.order, hash)
	r.log.Debugf("queued: %s  signed: %t", hash, x.IsSigned())
	return hash, nil
}

// SubmitUnsigned - queue an unsigned call for the off-chain worker
func (r *Reservoir) SubmitUnsigned(call runtime.Call) error {
	_, err := r.Submit(extrinsic.NewUnsigned(call).Bytes())
	return err
}

// Has - true if the extrinsic is waiting
func (r *Reservoir) Has(hash runtime.Hash) bool {
	r.Lock()
	defer r.Unlock()
	_, found := r.entries[hash]
	return found
}

// Candidates - up to maximum extrinsics in arrival order
func (r *Reservoir) Candidates(maximum int) [][]byte {
	r.Lock()
	defer r.Unlock()

	n := len(r.order)
	if maximum > 0 && n > maximum {
		n = maximum
	}
	result := make([][]byte, 0, n)
	for _, hash := range r.order[:n] {
		result = append(result, r.entries[hash].raw)
	}
	return result
}

// Remove - drop extrinsics that a block included
func (r *Reservoir) Remove(raws [][]byte) {
	if 0 == len(raws) {
		return
	}
	r.Lock()
	defer r.Unlock()

	for _, raw := range raws {
		delete(r.entries, runtime.HashOf(raw))
	}
	r.compact()
}

// Prune - recheck extrinsics a block builder passed over and drop the
// ones that no longer validate
//
// a nonce ahead of the account still validates so those stay queued
func (r *Reservoir) Prune(raws [][]byte) int {
	now := uint64(r.clock().Unix())
	invalid := make([][]byte, 0, len(raws))
	for _, raw := range raws {
		err := r.validator.Validate(raw, now)
		if nil != err {
			r.log.Infof("drop: %s  error: %s", runtime.HashOf(raw), err)
			invalid = append(invalid, raw)
		}
	}
	r.Remove(invalid)
	return len(invalid)
}

// Expire - drop every extrinsic that has waited longer than the expiry
func (r *Reservoir) Expire() int {
	r.Lock()
	defer r.Unlock()

	now := r.clock()
	n := 0
	for hash, item := range r.entries {
		if now.Sub(item.arrived) > r.expiry {
			r.log.Infof("expired: %s", hash)
			delete(r.entries, hash)
			n += 1
		}
	}
	if n > 0 {
		r.compact()
	}
	return n
}

// ReadCounters - number of waiting extrinsics
func (r *Reservoir) ReadCounters() Counts {
	r.Lock()
	defer r.Unlock()

	c := Counts{}
	for _, item := range r.entries {
		if item.signed {
			c.Signed += 1
		} else {
			c.Unsigned += 1
		}
	}
	return c
}

// keep only the hashes still present, must hold the lock
func (r *Reservoir) compact() {
	order := r.order[:0]
	for _, hash := range r.order {
		if _, found := r.entries[hash]; found {
			order = append(order, hash)
		}
	}
	r.order = order
}
