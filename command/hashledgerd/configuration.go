// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/configuration"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/listeners"
	"github.com/bitmark-inc/hashledger/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "hashledger.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "hashledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// to hold log levels
type LoglevelMap map[string]string

var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// ModuleType - an additional logic module version
//
// its layout is the default layout extended by the listed fields
type ModuleType struct {
	Name    string   `gluamapper:"name" json:"name"`
	Version string   `gluamapper:"version" json:"version"`
	Extend  []string `gluamapper:"extend" json:"extend"`
}

type Configuration struct {
	DataDirectory string                     `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                     `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType               `gluamapper:"database" json:"database"`
	Modules       []ModuleType               `gluamapper:"modules" json:"modules"`
	ClientRPC     listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Logging       logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
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

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// database name and log file are plain names inside their directories
	options.Database.Name, err = util.EnsurePlainName(options.Database.Directory, options.Database.Name)
	if nil != err {
		return nil, err
	}
	if _, err := util.EnsurePlainName(options.Logging.Directory, options.Logging.File); nil != err {
		return nil, err
	}

	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// the logic modules this node serves: the built-in module followed by
// any configured versions
func (c *Configuration) registry() (*ledger.Registry, error) {
	registry := ledger.NewRegistry()
	if err := registry.Register(ledger.NewDefaultModule()); nil != err {
		return nil, err
	}
	for _, m := range c.Modules {
		name := m.Name
		if "" == name {
			name = ledger.ModuleName
		}
		module := ledger.NewModule(name, m.Version, ledger.DefaultLayout.Extend(m.Extend...))
		if err := registry.Register(module); nil != err {
			return nil, err
		}
	}
	return registry, nil
}
