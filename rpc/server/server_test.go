// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/counter"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/facade"
	"github.com/bitmark-inc/hashledger/rpc/node"
	"github.com/bitmark-inc/hashledger/rpc/server"
	"github.com/bitmark-inc/hashledger/storage"
)

func setupTestServer(t *testing.T, allowDeploy bool) (*rpc.Client, *storage.Database, *ledger.Module) {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open database error: %s", err)
	}
	registry := ledger.NewRegistry()
	module := ledger.NewDefaultModule()
	if err := registry.Register(module); nil != err {
		t.Fatalf("register error: %s", err)
	}

	count := counter.NewLimited(0)
	r := server.Create(logger.New(fixtures.LogCategory), "1.0", count, factory.New(db, registry, nil), registry, allowDeploy)

	serverSide, clientSide := net.Pipe()
	go r.ServeCodec(jsonrpc.NewServerCodec(serverSide))

	return jsonrpc.NewClient(clientSide), db, module
}

func teardownTestServer(c *rpc.Client, db *storage.Database) {
	c.Close()
	db.Close()
	fixtures.TeardownTestLogger()
}

func TestNodeInfo(t *testing.T) {
	c, db, _ := setupTestServer(t, false)
	defer teardownTestServer(c, db)

	var reply node.InfoReply
	err := c.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info")
	assert.Equal(t, "1.0", reply.Version, "version")
	assert.Equal(t, 0, reply.Facades, "facades")
	assert.Equal(t, 1, reply.Modules, "modules")
}

func TestLedgerModules(t *testing.T) {
	c, db, module := setupTestServer(t, false)
	defer teardownTestServer(c, db)

	var reply facade.ModulesReply
	err := c.Call("Ledger.Modules", &facade.ModulesArguments{}, &reply)
	assert.Nil(t, err, "modules")
	assert.Equal(t, 1, len(reply.Modules), "count")
	assert.Equal(t, module.Address(), reply.Modules[0].Address, "address")
	assert.Equal(t, ledger.ModuleVersion, reply.Modules[0].Version, "version")
}

func TestLedgerDeploy(t *testing.T) {
	c, db, module := setupTestServer(t, true)
	defer teardownTestServer(c, db)

	var reply facade.DeployReply
	err := c.Call("Ledger.Deploy", &facade.DeployArguments{
		Logic: module.Address(),
		Owner: fixtures.Owner.Address(),
		Delay: 60,
	}, &reply)
	assert.Nil(t, err, "deploy")
	assert.False(t, reply.Facade.IsZero(), "facade address")

	var facades facade.FacadesReply
	err = c.Call("Ledger.Facades", &facade.FacadesArguments{}, &facades)
	assert.Nil(t, err, "facades")
	assert.Equal(t, 1, len(facades.Facades), "count")
	assert.Equal(t, reply.Facade, facades.Facades[0].Facade, "listed")
	assert.Equal(t, fixtures.Owner.Address(), facades.Facades[0].Owner, "owner")
}

func TestLedgerDeployDisabled(t *testing.T) {
	c, db, module := setupTestServer(t, false)
	defer teardownTestServer(c, db)

	var reply facade.DeployReply
	err := c.Call("Ledger.Deploy", &facade.DeployArguments{
		Logic: module.Address(),
		Owner: fixtures.Owner.Address(),
	}, &reply)
	assert.Equal(t, rpc.ServerError(fault.ErrDeployDisabled.Error()), err, "disabled")
	assert.Equal(t, fault.ErrDeployDisabled, fault.Lookup(err.Error()), "lookup")
}

func TestLedgerUnknownFacade(t *testing.T) {
	c, db, _ := setupTestServer(t, false)
	defer teardownTestServer(c, db)

	var reply ledger.Result
	err := c.Call("Ledger.Query", &facade.QueryArguments{
		Facade: fixtures.Owner.Address(),
		Call:   ledger.IsBatchProcessed(digest.NewDigestString("batch")),
	}, &reply)
	assert.NotNil(t, err, "query")
	assert.Equal(t, fault.ErrFacadeNotFound, fault.Lookup(err.Error()), "lookup")
}
