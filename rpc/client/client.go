// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - JSON-RPC client for a hashledgerd node
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/certificate"
	"github.com/bitmark-inc/hashledger/rpc/facade"
	"github.com/bitmark-inc/hashledger/rpc/node"
)

// Client - connection to one node, bound to one facade
type Client struct {
	sync.Mutex // serialises submissions

	log    *logger.L
	conn   net.Conn
	client *rpc.Client
	facade account.Address
}

// New - connect to a node
//
// fingerprint is the hex SHA3-256 of the node certificate; if empty
// any certificate is accepted
func New(connect string, fingerprint string, facadeAddress account.Address) (*Client, error) {
	log := logger.New("client")

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	fingerprint = strings.TrimSpace(fingerprint)
	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err || 32 != len(expected) {
			return nil, fault.ErrFingerprintMismatch
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fault.ErrFingerprintMismatch
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fault.ErrFingerprintMismatch
			}
			return nil
		}
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		log.Errorf("connect: %s  error: %s", connect, err)
		if strings.Contains(err.Error(), fault.ErrFingerprintMismatch.Error()) {
			return nil, fault.ErrFingerprintMismatch
		}
		return nil, fault.ErrLedgerUnreachable
	}

	log.Debugf("connected: %s", connect)
	return &Client{
		log:    log,
		conn:   conn,
		client: jsonrpc.NewClient(conn),
		facade: facadeAddress,
	}, nil
}

// Close - shutdown the connection
func (c *Client) Close() {
	_ = c.client.Close()
	_ = c.conn.Close()
}

// Facade - the facade this client writes to
func (c *Client) Facade() account.Address {
	return c.facade
}

// Submit - sign a call for the facade and submit it
//
// once sent a submission is not abandoned on context cancellation
func (c *Client) Submit(ctx context.Context, signer *account.Signer, call *ledger.Call) (*ledger.Receipt, error) {
	if nil == signer || nil == call {
		return nil, fault.ErrMissingParameters
	}
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	c.Lock()
	defer c.Unlock()

	tx := ledger.NewSignedTransaction(signer, c.facade, call)
	var reply ledger.Receipt
	if err := c.call(context.Background(), "Ledger.Submit", tx, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Query - run a read only call on the facade
func (c *Client) Query(ctx context.Context, call *ledger.Call) (*ledger.Result, error) {
	arguments := facade.QueryArguments{
		Facade: c.facade,
		Call:   call,
	}
	var reply ledger.Result
	if err := c.call(ctx, "Ledger.Query", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Deploy - ask the node to deploy a new facade
func (c *Client) Deploy(ctx context.Context, logic account.Address, owner account.Address, delay uint64) (*facade.DeployReply, error) {
	arguments := facade.DeployArguments{
		Logic: logic,
		Owner: owner,
		Delay: delay,
	}
	var reply facade.DeployReply
	if err := c.call(ctx, "Ledger.Deploy", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Events - events of the facade from sequence start
func (c *Client) Events(ctx context.Context, start uint64, count int) (*facade.EventsReply, error) {
	arguments := facade.EventsArguments{
		Facade: c.facade,
		Start:  start,
		Count:  count,
	}
	var reply facade.EventsReply
	if err := c.call(ctx, "Ledger.Events", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Facades - deployments on the node
func (c *Client) Facades(ctx context.Context) (*facade.FacadesReply, error) {
	var reply facade.FacadesReply
	if err := c.call(ctx, "Ledger.Facades", &facade.FacadesArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Modules - logic modules registered on the node
func (c *Client) Modules(ctx context.Context) (*facade.ModulesReply, error) {
	var reply facade.ModulesReply
	if err := c.call(ctx, "Ledger.Modules", &facade.ModulesArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - node status
func (c *Client) Info(ctx context.Context) (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call(ctx, "Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// make a call, server errors are turned back into their typed form
// and transport failures into ErrLedgerUnreachable
func (c *Client) call(ctx context.Context, method string, arguments interface{}, reply interface{}) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	pending := c.client.Go(method, arguments, reply, make(chan *rpc.Call, 1))

	select {
	case <-pending.Done:
	case <-ctx.Done():
		return ctx.Err()
	}

	err := pending.Error
	if nil == err {
		return nil
	}

	var serverError rpc.ServerError
	if errors.As(err, &serverError) {
		return fault.Lookup(string(serverError))
	}

	c.log.Errorf("%s: transport error: %s", method, err)
	return fault.ErrLedgerUnreachable
}
