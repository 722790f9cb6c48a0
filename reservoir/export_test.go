// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"time"
)

// SetClock - replace the time source
func (r *Reservoir) SetClock(clock func() time.Time) {
	r.clock = clock
}
