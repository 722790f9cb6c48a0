// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"path/filepath"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/messagebus"
	"github.com/bitmark-inc/ipchaind/publish"
	"github.com/bitmark-inc/ipchaind/util"
	"github.com/bitmark-inc/ipchaind/zmqutil"
)

const broadcastAddress = "127.0.0.1:24135"

func TestPublishToSubscriber(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	require.Nil(t, zmqutil.StartAuthentication(), "authentication")

	dir := t.TempDir()
	configuration := &publish.Configuration{
		Broadcast:  []string{broadcastAddress},
		PublicKey:  filepath.Join(dir, "publish.public"),
		PrivateKey: filepath.Join(dir, "publish.private"),
	}
	require.Nil(t, zmqutil.MakeKeyPair(configuration.PublicKey, configuration.PrivateKey), "make keys")

	require.Nil(t, publish.Initialise(configuration, "test"), "initialise")
	assert.Equal(t, fault.AlreadyInitialised, publish.Initialise(configuration, "test"), "second initialise")

	serverPublicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	require.Nil(t, err, "server key")

	public, private, err := zmq.NewCurveKeypair()
	require.Nil(t, err, "client keys")

	client, err := zmqutil.NewClient(zmq.SUB, []byte(zmq.Z85decode(private)), []byte(zmq.Z85decode(public)), 200*time.Millisecond)
	require.Nil(t, err, "client")
	defer client.Close()

	conn, err := util.NewConnection(broadcastAddress)
	require.Nil(t, err, "connection")
	require.Nil(t, client.Connect(conn, serverPublicKey), "connect")
	assert.True(t, client.IsConnected(), "connected")

	// subscriptions take a moment to reach the publisher so keep
	// sending until one arrives
	var parts [][]byte
	for i := 0; i < 50 && nil == parts; i += 1 {
		messagebus.Bus.Events.Send(publish.EventsCommand, []byte{1}, []byte("payload"))
		parts, _ = client.Receive(0)
	}
	require.Equal(t, 3, len(parts), "parts")
	assert.Equal(t, publish.EventsCommand, string(parts[0]), "command")
	assert.Equal(t, "payload", string(parts[2]), "payload")

	assert.Nil(t, publish.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, publish.Finalise(), "second finalise")
}

func TestClientErrors(t *testing.T) {
	_, err := zmqutil.NewClient(zmq.SUB, []byte{1}, []byte{2}, 0)
	assert.Equal(t, fault.InvalidKeyLength, err, "short keys")

	key := make([]byte, 32)
	client, err := zmqutil.NewClient(zmq.SUB, key, key, 0)
	require.Nil(t, err, "client")

	_, err = client.Receive(0)
	assert.Equal(t, fault.NotConnected, err, "not connected")

	conn, err := util.NewConnection(broadcastAddress)
	require.Nil(t, err, "connection")
	assert.Equal(t, fault.InvalidKeyLength, client.Connect(conn, []byte{3}), "short server key")
}
