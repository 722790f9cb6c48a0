// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// Submitter - accepts unsigned calls for the transaction pool
type Submitter interface {
	SubmitUnsigned(call runtime.Call) error
}

const (
	queueSize = 16

	// a submitted call is not offered again until this passes
	resubmitDelay = 30 * time.Second
)

// Worker - off-chain submission of due postponed calls
//
// told of each imported block, it submits exec_postponed for every
// call due in the block after it
type Worker struct {
	log       *logger.L
	db        *storage.Database
	submitter Submitter
	queue     chan uint64
	submitted *cache.Cache
}

// NewWorker - create the worker, it does nothing until Run
func NewWorker(db *storage.Database, submitter Submitter) *Worker {
	return &Worker{
		log:       logger.New("portal-worker"),
		db:        db,
		submitter: submitter,
		queue:     make(chan uint64, queueSize),
		submitted: cache.New(resubmitDelay, 2*resubmitDelay),
	}
}

// BlockImported - queue the block, drops the notice if the worker is
// behind since the next notice covers everything due by then
func (w *Worker) BlockImported(header blockrecord.Header, records []runtime.EventRecord) {
	select {
	case w.queue <- header.Number:
	default:
		w.log.Debugf("queue full, skip block: %d", header.Number)
	}
}

// Run - background loop
func (w *Worker) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case n := <-w.queue:
			w.Process(n)
		}
	}
	w.log.Info("shutting down…")
}

// Process - submit the calls that become valid in the block after
// best, returns the number submitted
func (w *Worker) Process(best uint64) int {
	tx := w.db.NewTransaction()
	defer tx.Discard()

	count := 0
	for _, p := range Due(tx, w.db, best+1) {
		key := fmt.Sprintf("%s/%d", p.Portal, p.Sequence)
		if _, found := w.submitted.Get(key); found {
			continue
		}
		err := w.submitter.SubmitUnsigned(ExecPostponedCall(p))
		if nil != err {
			w.log.Warnf("submit: %s  error: %s", key, err)
			continue
		}
		w.submitted.SetDefault(key, best)
		count++
	}
	if count > 0 {
		w.log.Infof("block: %d  submitted: %d postponed calls", best, count)
	}
	return count
}
