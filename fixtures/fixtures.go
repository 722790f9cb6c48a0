// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// well known test key pairs
var (
	Alice = mustKeyPair(1)
	Bob   = mustKeyPair(2)
	Carol = mustKeyPair(3)
	Dave  = mustKeyPair(4)
	Eve   = mustKeyPair(5)
)

func mustKeyPair(n byte) account.KeyPair {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = n
	}
	kp, err := account.NewEd25519(seed)
	if nil != err {
		panic(fmt.Sprintf("fixtures: key pair: %d: %s", n, err))
	}
	return kp
}

// SetupTestLogger - critical only logging into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// NewDatabase - empty in-memory world state
func NewDatabase(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db
}

// NewContext - context of the first extrinsic of a block
//
// origin defaults to root, use WithOrigin for signed calls
func NewContext(db *storage.Database, d *runtime.Dispatcher, block uint64, timestamp uint64) *runtime.Context {
	ctx := runtime.NewBlockContext(db, db.NewTransaction(), block, timestamp, d, runtime.DefaultParameters())
	return ctx.ForExtrinsic(0, runtime.HashOf([]byte{byte(block)}), 0, runtime.Root())
}

// Signed - the signed origin of a key pair
func Signed(kp account.KeyPair) runtime.Origin {
	return runtime.Signed(kp.Account())
}
