// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create certificate files, these commands
// cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("hashledgerd", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "fingerprint", "fp":
		return false // defer processing until configuration is read

	case "deploy", "facades", "modules", "events":
		return false // defer processing until database is open

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                          (h)    - display this message\n\n")
		fmt.Printf("  version                       (v)    - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]   (rpc)  - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                         and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                         (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                         for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                   (cfg)  - just check the configuration file\n")
		fmt.Printf("  fingerprint                   (fp)   - display the RPC certificate fingerprint\n")
		fmt.Printf("\n")

		fmt.Printf("  deploy LOGIC OWNER [DELAY]           - deploy a facade, LOGIC may be \"default\"\n")
		fmt.Printf("  facades                              - list deployed facades\n")
		fmt.Printf("  modules                              - list registered logic modules\n")
		fmt.Printf("  events FACADE [START [COUNT]]        - dump the event log of a facade\n")
		fmt.Printf("\n")
		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJson(options)

	case "fingerprint", "fp":
		_, fingerprint, err := certificate.Load(logger.New("main"), "rpc", options.ClientRPC.Certificate, options.ClientRPC.PrivateKey)
		if nil != err {
			exitwithstatus.Message("error: cannot load certificate: %q  error: %s", options.ClientRPC.Certificate, err)
		}
		fmt.Printf("rpc fingerprint: %x\n", fingerprint)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the ledger database is open so these commands can read and change it
func processDataCommand(log *logger.L, arguments []string, f *factory.Factory, registry *ledger.Registry) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "deploy":
		if len(arguments) < 2 {
			exitwithstatus.Message("deploy requires: LOGIC OWNER [DELAY]")
		}

		logic := ledger.NewDefaultModule().Address()
		if "default" != arguments[0] {
			a, err := account.AddressFromBase58(arguments[0])
			if nil != err {
				exitwithstatus.Message("error in logic address: %s", err)
			}
			logic = a
		}
		owner, err := account.AddressFromBase58(arguments[1])
		if nil != err {
			exitwithstatus.Message("error in owner address: %s", err)
		}
		delay := uint64(0)
		if len(arguments) > 2 {
			delay, err = strconv.ParseUint(arguments[2], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in delay: %s", err)
			}
		}

		facade, event, err := f.Deploy(logic, owner, delay)
		if nil != err {
			exitwithstatus.Message("deploy error: %s", err)
		}
		log.Infof("deployed facade: %s", facade.Address())
		printJson(event)

	case "facades":
		deployments, err := f.List()
		if nil != err {
			exitwithstatus.Message("list error: %s", err)
		}
		printJson(deployments)

	case "modules":
		modules := []ledger.Implementation{}
		for _, m := range registry.List() {
			modules = append(modules, ledger.Implementation{
				Address: m.Address(),
				Name:    m.Name(),
				Version: m.Version(),
				Layout:  m.Layout(),
			})
		}
		printJson(modules)

	case "events":
		if len(arguments) < 1 {
			exitwithstatus.Message("events requires: FACADE [START [COUNT]]")
		}
		address, err := account.AddressFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in facade address: %s", err)
		}
		start := uint64(0)
		if len(arguments) > 1 {
			start, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in start: %s", err)
			}
		}
		count := 100
		if len(arguments) > 2 {
			count, err = strconv.Atoi(arguments[2])
			if nil != err {
				exitwithstatus.Message("error in count: %s", err)
			}
		}

		facade, err := f.Get(address)
		if nil != err {
			exitwithstatus.Message("facade error: %s", err)
		}
		events, err := facade.Events(start, count)
		if nil != err {
			exitwithstatus.Message("events error: %s", err)
		}
		printJson(events)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}
	return filepath.Join(dir, name)
}

func printJson(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	os.Stdout.Write(b)
	os.Stdout.WriteString("\n")
}
