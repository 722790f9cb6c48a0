// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
)

func TestLevelWatcherMissingFile(t *testing.T) {
	_, err := newLevelWatcher(filepath.Join(t.TempDir(), "absent.conf"), nil)
	assert.Equal(t, fault.InvalidConfiguration, err, "missing file")
}

func TestLevelWatcherReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName := filepath.Join(t.TempDir(), "ipchaind.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte("return {}"), 0600), "write")

	reloads := make(chan struct{}, 10)
	w, err := newLevelWatcher(fileName, func() (map[string]string, error) {
		reloads <- struct{}{}
		return map[string]string{logger.DefaultTag: "critical"}, nil
	})
	require.Nil(t, err, "new watcher")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(done)
	}()

	// unrelated files in the same directory are ignored
	require.Nil(t, ioutil.WriteFile(filepath.Join(filepath.Dir(fileName), "other"), []byte("x"), 0600), "write other")
	require.Nil(t, ioutil.WriteFile(fileName, []byte("return { chain = \"local\" }"), 0600), "rewrite")

	select {
	case <-w.changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.True(t, len(reloads) > 0, "reload called")

	close(shutdown)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestLevelWatcherReloadError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName := filepath.Join(t.TempDir(), "ipchaind.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte("return {}"), 0600), "write")

	w, err := newLevelWatcher(fileName, func() (map[string]string, error) {
		return nil, fault.InvalidConfiguration
	})
	require.Nil(t, err, "new watcher")
	defer w.watcher.Close()

	w.apply()
	assert.Equal(t, 0, len(w.changed), "no change signalled")
}
