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

func runAddAdmin(c *cli.Context) error {
	return runAddressCall(c, ledger.MethodAddAdmin)
}

func runRemoveAdmin(c *cli.Context) error {
	return runAddressCall(c, ledger.MethodRemoveAdmin)
}

func runTransferOwnership(c *cli.Context) error {
	return runAddressCall(c, ledger.MethodInitiateOwnershipTransfer)
}

func runUpgrade(c *cli.Context) error {
	return runAddressCall(c, ledger.MethodUpgradeTo)
}

func runCompleteTransfer(c *cli.Context) error {
	return runGovernanceCall(c, ledger.NewCall(ledger.MethodCompleteOwnershipTransfer, nil))
}

func runCancelTransfer(c *cli.Context) error {
	return runGovernanceCall(c, ledger.NewCall(ledger.MethodCancelOwnershipTransfer, nil))
}

func runSetDelay(c *cli.Context) error {
	if !c.IsSet("seconds") {
		return fmt.Errorf("delay in seconds is required")
	}
	return runGovernanceCall(c, ledger.SetOwnershipTransferDelay(c.Uint64("seconds")))
}

func runGovernance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := m.facadeClient()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	result, err := client.Query(ctx, ledger.NewCall(ledger.MethodGetGovernance, nil))
	if nil != err {
		return err
	}
	var governance ledger.Governance
	if err := result.Decode(&governance); nil != err {
		return err
	}

	result, err = client.Query(ctx, ledger.NewCall(ledger.MethodGetImplementation, nil))
	if nil != err {
		return err
	}
	var implementation ledger.Implementation
	if err := result.Decode(&implementation); nil != err {
		return err
	}

	return printJson(m.w, struct {
		Facade         account.Address        `json:"facade"`
		Governance     *ledger.Governance     `json:"governance"`
		Implementation *ledger.Implementation `json:"implementation"`
	}{
		Facade:         client.Facade(),
		Governance:     &governance,
		Implementation: &implementation,
	})
}

func runAddressCall(c *cli.Context, method string) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := parseAddress(m, c.String("address"))
	if nil != err {
		return err
	}
	return runGovernanceCall(c, ledger.AddressCall(method, address))
}

// sign and submit one governance call, print the receipt
func runGovernanceCall(c *cli.Context, call *ledger.Call) error {
	m := c.App.Metadata["config"].(*metadata)

	signer, err := m.signer()
	if nil != err {
		return err
	}
	client, err := m.facadeClient()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "%s: signer: %s  facade: %s\n", call.Method, signer.Address(), client.Facade())
	}

	ctx, cancel := m.context()
	defer cancel()

	receipt, err := client.Submit(ctx, signer, call)
	if nil != err {
		return err
	}
	return printJson(m.w, receipt)
}

// an address is either base58 text or the name of a configured identity
func parseAddress(m *metadata, s string) (account.Address, error) {
	if "" == s {
		return account.ZeroAddress, fmt.Errorf("address is required")
	}
	a, err := account.AddressFromBase58(s)
	if nil == err {
		return a, nil
	}
	for _, identity := range m.config.Identities {
		if s == identity.Name {
			signer, err := m.config.Signer(s)
			if nil != err {
				return account.ZeroAddress, err
			}
			return signer.Address(), nil
		}
	}
	return account.ZeroAddress, err
}
