// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "hashledger-cli"
	app.Usage = "verify documents against a hash ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/hashledger-cli/hashledger-cli.conf]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
	}

	documentFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "id, d",
			Value: "",
			Usage: "*document `ID`",
		},
		cli.StringFlag{
			Name:  "table, t",
			Value: "",
			Usage: " ledger table `NAME` [from configuration]",
		},
	}

	addressFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "address, a",
			Value: "",
			Usage: "*base58 `ADDRESS` or identity name",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a signing identity, will not store in config file",
			Action: runGenerate,
		},
		{
			Name:      "deploy",
			Usage:     "deploy a new facade on the node",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "logic, l",
					Value: "",
					Usage: " logic module `ADDRESS` [built-in module]",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `ADDRESS` or identity name [current identity]",
				},
				cli.Uint64Flag{
					Name:  "delay, D",
					Value: 0,
					Usage: " ownership transfer delay `SECONDS`",
				},
			},
			Action: runDeploy,
		},
		{
			Name:      "verify",
			Usage:     "write the hash of a document to the ledger",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags,
			Action:    runVerify,
		},
		{
			Name:      "verify-batch",
			Usage:     "write the hashes of several documents",
			ArgsUsage: "[ID...]\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "all",
					Usage: " every document in the documents directory",
				},
			}, documentFlags[1:]...),
			Action: runVerifyBatch,
		},
		{
			Name:      "check",
			Usage:     "compare a document with its stored hash",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags,
			Action:    runCheck,
		},
		{
			Name:      "archive",
			Usage:     "archive the record of a document",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags,
			Action:    runArchive,
		},
		{
			Name:      "restore",
			Usage:     "restore an archived record",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags,
			Action:    runRestore,
		},
		{
			Name:      "delete",
			Usage:     "erase the record of a document",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags,
			Action:    runDelete,
		},
		{
			Name:      "record",
			Usage:     "display the stored hash and metadata of a record",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "encoding, e",
					Value: "",
					Usage: " key space `NAME` [from configuration]",
				},
			}, documentFlags...),
			Action: runRecord,
		},
		{
			Name:      "add-admin",
			Usage:     "grant admin rights on the facade",
			ArgsUsage: "\n   (* = required)",
			Flags:     addressFlags,
			Action:    runAddAdmin,
		},
		{
			Name:      "remove-admin",
			Usage:     "revoke admin rights on the facade",
			ArgsUsage: "\n   (* = required)",
			Flags:     addressFlags,
			Action:    runRemoveAdmin,
		},
		{
			Name:      "transfer-ownership",
			Usage:     "start a delayed ownership transfer",
			ArgsUsage: "\n   (* = required)",
			Flags:     addressFlags,
			Action:    runTransferOwnership,
		},
		{
			Name:   "complete-transfer",
			Usage:  "accept a pending ownership transfer as the new owner",
			Action: runCompleteTransfer,
		},
		{
			Name:   "cancel-transfer",
			Usage:  "cancel a pending ownership transfer",
			Action: runCancelTransfer,
		},
		{
			Name:      "set-delay",
			Usage:     "change the ownership transfer delay",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "seconds, s",
					Value: 0,
					Usage: "*transfer delay `SECONDS`",
				},
			},
			Action: runSetDelay,
		},
		{
			Name:      "upgrade",
			Usage:     "switch the facade to another logic module",
			ArgsUsage: "\n   (* = required)",
			Flags:     addressFlags,
			Action:    runUpgrade,
		},
		{
			Name:   "governance",
			Usage:  "display owner, admins, pending transfer and logic",
			Action: runGovernance,
		},
		{
			Name:  "events",
			Usage: "display the facade event log",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first sequence `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum events to output `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:   "facades",
			Usage:  "list the facades deployed on the node",
			Action: runFacades,
		},
		{
			Name:   "modules",
			Usage:  "list the logic modules registered on the node",
			Action: runModules,
		},
		{
			Name:   "info",
			Usage:  "display node status",
			Action: runInfo,
		},
		{
			Name:      "watch",
			Usage:     "verify documents as they change, reload throttle settings",
			ArgsUsage: "\n   (* = required)",
			Flags:     documentFlags[1:],
			Action:    runWatch,
		},
		{
			Name:  "version",
			Usage: "display hashledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "h" == command || "" == command {
			return nil
		}

		file := c.GlobalString("config")
		if "" == file {
			var err error
			file, err = defaultConfigurationFile(app.Name)
			if nil != err {
				return err
			}
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file)
		if nil != err {
			return err
		}

		if err := logger.Initialise(configuration.Logging); nil != err {
			return err
		}

		log := logger.New("main")
		if configuration.IsMockMode() {
			log.Warn("ledger connection or facade not configured")
			if verbose {
				fmt.Fprintf(e, "ledger connection or facade not configured: mock mode\n")
			}
		}

		c.App.Metadata["config"] = &metadata{
			file:     file,
			config:   configuration,
			identity: c.GlobalString("identity"),
			verbose:  verbose,
			e:        e,
			w:        w,
			log:      log,
		}
		return nil
	}

	// release connections and flush the log
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		m.close()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
