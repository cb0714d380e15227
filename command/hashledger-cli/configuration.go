// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/configuration"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/util"
)

const (
	defaultDocumentDirectory = "documents"
	defaultTable             = "documents"
	defaultTimeout           = 30 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "hashledger-cli.log"
	defaultLogCount     = 5
	defaultLogSize      = 1024 * 1024
)

// LedgerType - where writes are sent
//
// an empty connect or facade runs document operations in mock mode
type LedgerType struct {
	Connect     string `gluamapper:"connect" json:"connect"`
	Fingerprint string `gluamapper:"fingerprint" json:"fingerprint"`
	Facade      string `gluamapper:"facade" json:"facade"`
	Timeout     int    `gluamapper:"timeout" json:"timeout"`
}

// IdentityType - a named signing identity
type IdentityType struct {
	Name        string `gluamapper:"name" json:"name"`
	Description string `gluamapper:"description" json:"description"`
	Seed        string `gluamapper:"seed" json:"-"`
}

type Configuration struct {
	DataDirectory   string                              `gluamapper:"data_directory" json:"data_directory"`
	Ledger          LedgerType                          `gluamapper:"ledger" json:"ledger"`
	DefaultIdentity string                              `gluamapper:"default_identity" json:"default_identity"`
	Identities      []IdentityType                      `gluamapper:"identities" json:"identities"`
	Documents       string                              `gluamapper:"documents" json:"documents"`
	Table           string                              `gluamapper:"table" json:"table"`
	Encoding        string                              `gluamapper:"encoding" json:"encoding"`
	Throttle        configuration.ThrottleConfiguration `gluamapper:"throttle" json:"throttle"`
	Logging         logger.Configuration                `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory: ".",
		Ledger: LedgerType{
			Timeout: defaultTimeout,
		},
		Documents: defaultDocumentDirectory,
		Table:     defaultTable,
		Encoding:  keyspace.Text,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "warn",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	dataDirectory, err := util.DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = dataDirectory

	options.Documents = util.EnsureAbsolute(options.DataDirectory, options.Documents)
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if _, err := util.EnsurePlainName(options.Logging.Directory, options.Logging.File); nil != err {
		return nil, err
	}
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	if _, err := keyspace.Get(options.Encoding); nil != err {
		return nil, err
	}
	if _, err := options.Throttle.Settings(); nil != err {
		return nil, err
	}
	if "" != options.Ledger.Facade {
		if _, err := account.AddressFromBase58(options.Ledger.Facade); nil != err {
			return nil, err
		}
	}
	if options.Ledger.Timeout <= 0 {
		options.Ledger.Timeout = defaultTimeout
	}

	return options, nil
}

// default location of the configuration file
func defaultConfigurationFile(name string) (string, error) {
	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		home, err := os.UserHomeDir()
		if nil != err {
			return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		p = filepath.Join(home, ".config")
	}
	return filepath.Join(p, name, name+".conf"), nil
}

// HasEndpoint - true if a node to connect to is configured
func (c *Configuration) HasEndpoint() bool {
	return "" != c.Ledger.Connect
}

// IsMockMode - true if either the ledger endpoint or the facade
// address is missing; documents are then never written to a ledger
func (c *Configuration) IsMockMode() bool {
	return !c.HasEndpoint() || c.FacadeAddress().IsZero()
}

// FacadeAddress - the configured facade, zero if unset
func (c *Configuration) FacadeAddress() account.Address {
	if "" == c.Ledger.Facade {
		return account.ZeroAddress
	}
	a, _ := account.AddressFromBase58(c.Ledger.Facade)
	return a
}

// Timeout - limit for one ledger operation
func (c *Configuration) Timeout() time.Duration {
	return time.Duration(c.Ledger.Timeout) * time.Second
}

// Signer - the named identity, or the default one for an empty name
func (c *Configuration) Signer(name string) (*account.Signer, error) {
	if "" == name {
		name = c.DefaultIdentity
	}
	if "" == name && 1 == len(c.Identities) {
		name = c.Identities[0].Name
	}
	for _, identity := range c.Identities {
		if name == identity.Name {
			if "" == identity.Seed {
				return nil, fmt.Errorf("identity: %q has no seed", name)
			}
			return account.NewSignerFromSeed(identity.Seed)
		}
	}
	return nil, fmt.Errorf("identity: %q not found", name)
}
