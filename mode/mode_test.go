// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ipchaind/chain"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/mode"
)

func TestLifecycle(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.Equal(t, fault.InvalidChain, mode.Initialise("other"), "bad chain")
	assert.Equal(t, fault.NotInitialised, mode.Finalise(), "not started")

	assert.Nil(t, mode.Initialise(chain.Local), "initialise")
	assert.Equal(t, fault.AlreadyInitialised, mode.Initialise(chain.Local), "twice")

	assert.True(t, mode.Is(mode.Starting), "starting")
	assert.True(t, mode.IsTesting(), "local is testing")
	assert.Equal(t, chain.Local, mode.ChainName(), "chain name")

	mode.Set(mode.Normal)
	assert.True(t, mode.Is(mode.Normal), "normal")
	assert.Equal(t, "Normal", mode.String(), "text")

	assert.Nil(t, mode.Finalise(), "finalise")
	assert.True(t, mode.Is(mode.Stopped), "stopped")
}
