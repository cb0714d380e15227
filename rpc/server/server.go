// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/counter"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/facade"
	"github.com/bitmark-inc/hashledger/rpc/node"
)

// Create - an RPC server with the Ledger and Node services
func Create(log *logger.L, version string, rpcCount *counter.Limited, f *factory.Factory, registry *ledger.Registry, allowDeploy bool) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.RegisterName("Ledger", facade.New(log, f, registry, allowDeploy))
	_ = server.Register(node.New(log, start, version, rpcCount, f, registry))

	return server
}
