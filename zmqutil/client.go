// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/util"
)

const identifierSize = 32

// Client - a curve encrypted client socket, usually zmq.SUB on the
// bridge side of the event publisher
type Client struct {
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	v6              bool
	socketType      zmq.Type
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create a client, it has no socket until Connect
func NewClient(socketType zmq.Type, privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {

	if len(publicKey) != publicLength || len(privateKey) != privateLength {
		return nil, fault.InvalidKeyLength
	}

	client := &Client{
		publicKey:       make([]byte, publicLength),
		privateKey:      make([]byte, privateLength),
		serverPublicKey: make([]byte, publicLength),
		socketType:      socketType,
		timeout:         timeout,
	}
	copy(client.privateKey, privateKey)
	copy(client.publicKey, publicKey)
	return client, nil
}

// create a socket and connect to the server with its key
func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(client.socketType)
	if nil != err {
		return err
	}

	// create a secure random identifier
	randomIdBytes := make([]byte, identifierSize)
	_, err = rand.Read(randomIdBytes)
	if nil != err {
		socket.Close()
		return err
	}

	// set up as client
	err = socket.SetCurveServer(0)
	if nil != err {
		goto failure
	}
	err = socket.SetCurvePublickey(string(client.publicKey))
	if nil != err {
		goto failure
	}
	err = socket.SetCurveSecretkey(string(client.privateKey))
	if nil != err {
		goto failure
	}

	// local identitity is a random value
	err = socket.SetIdentity(string(randomIdBytes))
	if nil != err {
		goto failure
	}

	// destination identity is its public key
	err = socket.SetCurveServerkey(string(client.serverPublicKey))
	if nil != err {
		goto failure
	}

	// zero => do not set timeout
	if 0 != client.timeout {
		err = socket.SetSndtimeo(client.timeout)
		if nil != err {
			goto failure
		}
		err = socket.SetRcvtimeo(client.timeout)
		if nil != err {
			goto failure
		}
	}
	err = socket.SetLinger(0)
	if nil != err {
		goto failure
	}

	if zmq.SUB == client.socketType {
		// empty prefix => receive everything
		err = socket.SetSubscribe("")
		if nil != err {
			goto failure
		}
	}

	// heartbeat (constants from socket.go)
	err = socket.SetHeartbeatIvl(heartbeatInterval)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		goto failure
	}
	err = socket.SetHeartbeatTimeout(heartbeatTimeout)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		goto failure
	}
	err = socket.SetHeartbeatTtl(heartbeatTTL)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		goto failure
	}

	// set IPv6 state before connect
	err = socket.SetIpv6(client.v6)
	if nil != err {
		goto failure
	}

	err = socket.Connect(client.address)
	if nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

// destroy the socket but keep the address so a reconnect is possible
func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	if "" != client.address {
		client.socket.Disconnect(client.address)
	}
	err := client.socket.Close()
	client.socket = nil
	return err
}

// Connect - disconnect any old address and connect to a new one
func (client *Client) Connect(conn *util.Connection, serverPublicKey []byte) error {
	if len(serverPublicKey) != publicLength {
		return fault.InvalidKeyLength
	}

	err := client.closeSocket()
	if nil != err {
		return err
	}

	copy(client.serverPublicKey, serverPublicKey)
	client.address, client.v6 = conn.CanonicalIPandPort("tcp://")

	err = client.openSocket()
	if nil != err {
		client.address = ""
	}
	return err
}

// IsConnected - true after a successful connect
func (client *Client) IsConnected() bool {
	return nil != client.socket
}

// Close - disconnect and close the socket
func (client *Client) Close() error {
	err := client.closeSocket()
	client.address = ""
	return err
}

// Receive - the parts of the next message
func (client *Client) Receive(flags zmq.Flag) ([][]byte, error) {
	if nil == client.socket {
		return nil, fault.NotConnected
	}
	return client.socket.RecvMessageBytes(flags)
}

// String - the connected address
func (client *Client) String() string {
	return client.address
}
