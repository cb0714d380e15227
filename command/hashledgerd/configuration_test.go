// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/ledger"
)

func writeConfiguration(t *testing.T, text string) (string, func()) {
	dir, err := os.MkdirTemp("", "hashledgerd")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	file := filepath.Join(dir, "hashledgerd.conf")
	if err := os.WriteFile(file, []byte(text), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return file, func() { os.RemoveAll(dir) }
}

func TestConfigurationPaths(t *testing.T) {
	file, cleanup := writeConfiguration(t, `
return {
    data_directory = ".",
    pidfile = "hashledgerd.pid",
    client_rpc = {
        listen = { "127.0.0.1:2130" },
        allow_deploy = true,
    },
}
`)
	defer cleanup()

	c, err := getConfiguration(file)
	assert.Nil(t, err, "configuration")

	dir := filepath.Dir(file)
	assert.Equal(t, dir, c.DataDirectory, "data directory")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory), c.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, defaultLedgerDatabase), c.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), c.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, "hashledgerd.pid"), c.PidFile, "pid file")
	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "listen")
	assert.True(t, c.ClientRPC.AllowDeploy, "allow deploy")

	info, err := os.Stat(c.Logging.Directory)
	assert.Nil(t, err, "log directory created")
	assert.True(t, info.IsDir(), "log directory")
}

func TestConfigurationRejects(t *testing.T) {
	items := []struct {
		text string
		err  error
	}{
		{`return { }`, fault.ErrInvalidDirectory},
		{`return { data_directory = "~" }`, fault.ErrInvalidDirectory},
		{`return { data_directory = ".", database = { name = "sub/db" } }`, fault.ErrNotPlainFileName},
		{`return "text"`, fault.ErrInvalidConfiguration},
	}

	for i, item := range items {
		file, cleanup := writeConfiguration(t, item.text)
		_, err := getConfiguration(file)
		assert.Equal(t, item.err, err, "%d: error", i)
		cleanup()
	}
}

func TestConfiguredModules(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	c := &Configuration{
		Modules: []ModuleType{
			{Version: "1.1.0", Extend: []string{"notes"}},
			{Name: "audit", Version: "1.0.0"},
		},
	}
	registry, err := c.registry()
	assert.Nil(t, err, "registry")

	modules := registry.List()
	assert.Equal(t, 3, len(modules), "modules")

	upgraded := ledger.NewModule(ledger.ModuleName, "1.1.0", ledger.DefaultLayout.Extend("notes"))
	logic, ok := registry.Lookup(upgraded.Address())
	assert.True(t, ok, "extended module registered")
	assert.True(t, logic.Layout().IsCompatibleWith(ledger.DefaultLayout), "append only layout")

	c.Modules = append(c.Modules, ModuleType{Version: ledger.ModuleVersion})
	_, err = c.registry()
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "duplicate of built-in module")
}
