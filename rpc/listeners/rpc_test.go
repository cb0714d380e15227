// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/counter"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/rpc/certificate"
	"github.com/bitmark-inc/hashledger/rpc/listeners"
)

type Add struct{}

type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)

	cer, key, err := certificate.Generate("test", nil)
	assert.Nil(t, err, "generate certificate")
	tlsConfig, fin, err := certificate.Get(log, "test", string(cer), string(key))
	assert.Nil(t, err, "certificate")

	s := rpc.NewServer()
	assert.Nil(t, s.Register(Add{}), "register")

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}
	count := counter.NewLimited(configuration.MaximumConnections)

	l, err := listeners.NewRPC(&configuration, log, count, s, tlsConfig, fin)
	assert.Nil(t, err, "new listener")
	assert.Nil(t, l.Serve(), "serve")
	defer l.Close()

	addrs := l.Addresses()
	assert.Equal(t, 1, len(addrs), "addresses")

	conn, err := tls.Dial("tcp", addrs[0].String(), &tls.Config{InsecureSkipVerify: true})
	assert.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	var reply int
	assert.Nil(t, client.Call("Add.Add", &AddArg{A: 2, B: 3}, &reply), "call")
	assert.Equal(t, 5, reply, "reply")
	assert.Equal(t, uint64(1), count.Uint64(), "connection count")
}

func TestRpcListenerConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.NewLimited(1)

	_, err := listeners.NewRPC(&listeners.RPCConfiguration{Listen: []string{"127.0.0.1:0"}}, log, count, rpc.NewServer(), nil, [32]byte{})
	assert.Equal(t, fault.ErrMissingParameters, err, "zero connections")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 1}, log, count, rpc.NewServer(), nil, [32]byte{})
	assert.Equal(t, fault.ErrMissingParameters, err, "no listen")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"localhost:1234"}}, log, count, rpc.NewServer(), nil, [32]byte{})
	assert.Equal(t, fault.ErrInvalidIpAddress, err, "host name")
}
