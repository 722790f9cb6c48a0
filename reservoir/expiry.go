// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"time"
)

// cleanup cycle time
const expiryInterval = 60 * time.Second

// Run - background expiry loop
func (r *Reservoir) Run(args interface{}, shutdown <-chan struct{}) {

	log := r.log

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case <-time.After(expiryInterval):
			if n := r.Expire(); n > 0 {
				log.Infof("expired: %d", n)
			}
		}
	}
	log.Info("shutting down…")
}
