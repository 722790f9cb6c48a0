// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sealer

import (
	"time"
)

// SetClock - replace the time source
func (s *Sealer) SetClock(clock func() time.Time) {
	s.clock = clock
}
