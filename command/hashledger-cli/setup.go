// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/rpc/client"
	"github.com/bitmark-inc/hashledger/submission"
	"github.com/bitmark-inc/hashledger/throttle"
)

// state shared by the commands of one invocation
type metadata struct {
	file     string
	config   *Configuration
	identity string
	verbose  bool
	e        io.Writer
	w        io.Writer
	log      *logger.L

	client    *client.Client
	throttler *throttle.Throttler
}

// connection to the configured node, opened on first use
func (m *metadata) connect() (*client.Client, error) {
	if nil != m.client {
		return m.client, nil
	}
	if !m.config.HasEndpoint() {
		return nil, fault.ErrLedgerNotConfigured
	}
	c, err := client.New(m.config.Ledger.Connect, m.config.Ledger.Fingerprint, m.config.FacadeAddress())
	if nil != err {
		return nil, err
	}
	m.client = c
	return c, nil
}

// connection that must name a facade
func (m *metadata) facadeClient() (*client.Client, error) {
	if m.config.FacadeAddress().IsZero() {
		return nil, fault.ErrFacadeNotFound
	}
	return m.connect()
}

func (m *metadata) signer() (*account.Signer, error) {
	return m.config.Signer(m.identity)
}

func (m *metadata) store() (*document.FileStore, error) {
	return document.NewFileStore(m.config.Documents)
}

// submission service over the configured ledger, or in mock mode
// when none is configured
func (m *metadata) service(store document.Store) (*submission.Service, error) {
	options := submission.Options{
		Store:    store,
		Encoding: m.config.Encoding,
	}

	if !m.config.IsMockMode() {
		c, err := m.facadeClient()
		if nil != err {
			return nil, err
		}
		settings, err := m.config.Throttle.Settings()
		if nil != err {
			return nil, err
		}
		th, err := throttle.New(settings)
		if nil != err {
			return nil, err
		}
		th.Start()
		m.throttler = th

		options.Ledger = c
		options.Throttler = th
	}

	return submission.New(options)
}

func (m *metadata) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.config.Timeout())
}

// release everything opened during the command
func (m *metadata) close() {
	if nil != m.throttler {
		m.throttler.Stop()
		m.throttler = nil
	}
	if nil != m.client {
		m.client.Close()
		m.client = nil
	}
}
