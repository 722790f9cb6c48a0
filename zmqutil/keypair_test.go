// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/zmqutil"
)

func TestParseKey(t *testing.T) {
	hex32 := strings.Repeat("ab", 32)

	k, private, err := zmqutil.ParseKey("PUBLIC:" + hex32 + "\n")
	assert.Nil(t, err, "public")
	assert.False(t, private, "public tag")
	assert.Equal(t, 32, len(k), "public length")

	k, private, err = zmqutil.ParseKey("  PRIVATE:" + hex32)
	assert.Nil(t, err, "private")
	assert.True(t, private, "private tag")
	assert.Equal(t, byte(0xab), k[0], "private byte")

	_, _, err = zmqutil.ParseKey("PUBLIC:abcd")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short public")

	_, _, err = zmqutil.ParseKey("PRIVATE:abcd")
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "short private")

	_, _, err = zmqutil.ParseKey(hex32)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged")

	_, err = zmqutil.ReadPrivateKey("PUBLIC:" + hex32)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public as private")

	_, err = zmqutil.ReadPublicKey("PRIVATE:" + hex32)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private as public")
}

func TestMakeKeyPair(t *testing.T) {
	dir, err := ioutil.TempDir("", "zmqutil")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	public := filepath.Join(dir, "publish.public")
	private := filepath.Join(dir, "publish.private")

	err = zmqutil.MakeKeyPair(public, private)
	require.Nil(t, err, "make")

	pub, err := zmqutil.ReadPublicKeyFile(public)
	assert.Nil(t, err, "read public")
	assert.Equal(t, 32, len(pub), "public length")

	priv, err := zmqutil.ReadPrivateKeyFile(private)
	assert.Nil(t, err, "read private")
	assert.Equal(t, 32, len(priv), "private length")

	err = zmqutil.MakeKeyPair(public, private)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "no overwrite")
}
