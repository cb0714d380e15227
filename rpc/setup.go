// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/counter"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/certificate"
	"github.com/bitmark-inc/hashledger/rpc/listeners"
	"github.com/bitmark-inc/hashledger/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// Server - a running RPC listener
type Server struct {
	log      *logger.L
	count    *counter.Limited
	listener listeners.Listener
}

// Start - load the certificate and start listening
func Start(configuration *listeners.RPCConfiguration, version string, f *factory.Factory, registry *ledger.Registry) (*Server, error) {
	log := logger.New("rpc")
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	count := counter.NewLimited(configuration.MaximumConnections)

	l, err := listeners.NewRPC(
		configuration,
		log,
		count,
		server.Create(log, version, count, f, registry, configuration.AllowDeploy),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return nil, err
	}
	if err := l.Serve(); nil != err {
		return nil, err
	}

	if configuration.AllowDeploy {
		log.Warn("remote deployment is enabled")
	}

	return &Server{
		log:      log,
		count:    count,
		listener: l,
	}, nil
}

// Addresses - the bound listen addresses
func (s *Server) Addresses() []net.Addr {
	return s.listener.Addresses()
}

// Connections - number of open client connections
func (s *Server) Connections() uint64 {
	return s.count.Uint64()
}

// Stop - stop accepting connections
func (s *Server) Stop() {
	if nil == s {
		return
	}
	s.log.Info("shutting down…")
	s.listener.Close()
	s.log.Info("finished")
	s.log.Flush()
}
