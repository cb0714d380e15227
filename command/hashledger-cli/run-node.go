// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/ledger"
)

// a fresh identity, it is printed and not stored
func runGenerate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	seed, err := account.NewSeed()
	if nil != err {
		return err
	}
	signer, err := account.NewSignerFromSeed(seed)
	if nil != err {
		return err
	}

	return printJson(m.w, struct {
		Seed    string          `json:"seed"`
		Address account.Address `json:"address"`
	}{
		Seed:    seed,
		Address: signer.Address(),
	})
}

func runDeploy(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	logic := ledger.NewDefaultModule().Address()
	if s := c.String("logic"); "" != s {
		a, err := account.AddressFromBase58(s)
		if nil != err {
			return err
		}
		logic = a
	}

	var owner account.Address
	if s := c.String("owner"); "" != s {
		a, err := parseAddress(m, s)
		if nil != err {
			return err
		}
		owner = a
	} else {
		signer, err := m.signer()
		if nil != err {
			return err
		}
		owner = signer.Address()
	}

	client, err := m.connect()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "deploy: logic: %s  owner: %s  delay: %d\n", logic, owner, c.Uint64("delay"))
	}

	ctx, cancel := m.context()
	defer cancel()

	reply, err := client.Deploy(ctx, logic, owner, c.Uint64("delay"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := m.connect()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	reply, err := client.Info(ctx)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runFacades(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := m.connect()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	reply, err := client.Facades(ctx)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runModules(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := m.connect()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	reply, err := client.Modules(ctx)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runEvents(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := m.facadeClient()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	reply, err := client.Events(ctx, c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}
