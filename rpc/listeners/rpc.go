// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS JSON-RPC connection acceptors
package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/counter"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/util"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - something that accepts connections until closed
type Listener interface {
	Serve() error
	Close()
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log         *logger.L
	count       *counter.Counter
	server      *rpc.Server
	tlsConfig   *tls.Config
	connections []*util.Connection
	listeners   []net.Listener
}

// NewRPC - validate the configuration and prepare a listener
//
// the counter bounds the number of concurrent client connections
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount || count.Maximum() < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	connections, err := util.NewConnections(configuration.Listen)
	if nil != err {
		log.Errorf("invalid %s listen: %q  error: %s", logName, configuration.Listen, err)
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	return &rpcListener{
		log:         log,
		count:       count,
		server:      server,
		tlsConfig:   tlsConfig,
		connections: connections,
	}, nil
}

// Serve - start one accept loop per address
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, c := range r.connections {
		listen, v6 := c.CanonicalIPandPort("")
		network := "tcp4"
		if v6 {
			network = "tcp"
		}
		r.log.Infof("starting RPC server: %s", listen)
		l, err := tls.Listen(network, listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		go doServeRPC(l, r.server, r.log, r.count)
	}
	return nil
}

// Close - stop accepting, live connections finish by themselves
func (r *rpcListener) Close() {
	r.Lock()
	defer r.Unlock()

	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}

func doServeRPC(listen net.Listener, server *rpc.Server, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if err != nil {
			log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !count.Acquire() {
			log.Warnf("rpc connection limit reached, reject: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			count.Release()
		}()
	}
	_ = listen.Close()
}
