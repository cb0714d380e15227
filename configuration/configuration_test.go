// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/configuration"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/throttle"
)

type testConfiguration struct {
	Name     string                              `gluamapper:"name"`
	Count    int                                 `gluamapper:"count"`
	Enabled  bool                                `gluamapper:"enabled"`
	Listen   []string                            `gluamapper:"listen"`
	Throttle configuration.ThrottleConfiguration `gluamapper:"throttle"`
}

const testChunk = `
local M = {}
M.name = "node-" .. "one"
M.count = 3 * 4
M.enabled = true
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.throttle = {
    ceiling = 10,
    window = 30,
    max_batch_size = 2,
    locks = { deletion = true, archiving = false },
}
return M
`

func TestParseConfigurationString(t *testing.T) {
	c := testConfiguration{
		Name:  "default",
		Count: 1,
	}
	err := configuration.ParseConfigurationString(testChunk, &c)
	assert.Nil(t, err, "parse")
	assert.Equal(t, "node-one", c.Name, "name")
	assert.Equal(t, 12, c.Count, "count")
	assert.True(t, c.Enabled, "enabled")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, c.Listen, "listen")

	s, err := c.Throttle.Settings()
	assert.Nil(t, err, "settings")
	assert.Equal(t, 10, s.Ceiling, "ceiling")
	assert.Equal(t, 30*time.Second, s.Window, "window")
	assert.Equal(t, 2, s.MaxBatchSize, "batch size")
	assert.Equal(t, time.Duration(0), s.QueueTimeout, "unset timeout")
	assert.True(t, s.Locks[throttle.Deletion], "deletion locked")
	assert.False(t, s.Locks[throttle.Archiving], "archiving unlocked")
}

func TestParseKeepsDefaults(t *testing.T) {
	c := testConfiguration{
		Name:  "default",
		Count: 7,
	}
	err := configuration.ParseConfigurationString(`return { enabled = true }`, &c)
	assert.Nil(t, err, "parse")
	assert.Equal(t, "default", c.Name, "name")
	assert.Equal(t, 7, c.Count, "count")
}

func TestParseRejectsNonTable(t *testing.T) {
	c := testConfiguration{}
	err := configuration.ParseConfigurationString(`return 42`, &c)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "not a table")

	err = configuration.ParseConfigurationString(`return {`, &c)
	assert.NotNil(t, err, "syntax error")
}

func TestParseConfigurationFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "configuration")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "test.conf")
	chunk := `return { name = arg[0], count = 5 }`
	assert.Nil(t, os.WriteFile(fileName, []byte(chunk), 0600), "write")

	c := testConfiguration{}
	err = configuration.ParseConfigurationFile(fileName, &c)
	assert.Nil(t, err, "parse")
	assert.Equal(t, fileName, c.Name, "arg[0]")
	assert.Equal(t, 5, c.Count, "count")

	err = configuration.ParseConfigurationFile(filepath.Join(dir, "missing.conf"), &c)
	assert.NotNil(t, err, "missing file")
}

func TestThrottleLockNames(t *testing.T) {
	c := configuration.ThrottleConfiguration{
		Locks: map[string]bool{"shredding": true},
	}
	_, err := c.Settings()
	assert.Equal(t, fault.ErrInvalidOperationType, err, "unknown lock")
}

func TestFileWatcher(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "watcher")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "watched.conf")
	assert.Nil(t, os.WriteFile(fileName, []byte("return {}"), 0600), "write")

	w, err := configuration.NewFileWatcher(fileName, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "watcher")
	assert.Nil(t, w.Start(), "start")
	defer w.Stop()

	other := filepath.Join(dir, "other.conf")
	assert.Nil(t, os.WriteFile(other, []byte("return {}"), 0600), "write other")
	assert.Nil(t, os.WriteFile(fileName, []byte("return { count = 1 }"), 0600), "rewrite")

	select {
	case <-w.Change():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	assert.Nil(t, os.Remove(fileName), "remove")
	select {
	case <-w.Remove():
	case <-time.After(5 * time.Second):
		t.Fatal("no remove notification")
	}
}

func TestFileWatcherErrors(t *testing.T) {
	dir, err := os.MkdirTemp("", "watcher")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	_, err = configuration.NewFileWatcher(filepath.Join(dir, "missing"), nil)
	assert.True(t, os.IsNotExist(err), "missing file")

	_, err = configuration.NewFileWatcher(dir, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "directory")

	_, err = configuration.NewDirectoryWatcher(filepath.Join(dir, "missing"), ".json", nil)
	assert.True(t, os.IsNotExist(err), "missing directory")
}

func TestDirectoryWatcher(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "documents")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	w, err := configuration.NewDirectoryWatcher(dir, ".json", logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "watcher")
	assert.Nil(t, w.Start(), "start")
	defer w.Stop()

	assert.Nil(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0600), "write txt")
	doc := filepath.Join(dir, "doc-1.json")
	assert.Nil(t, os.WriteFile(doc, []byte("{}"), 0600), "write json")

	select {
	case name := <-w.Files():
		resolved, _ := filepath.EvalSymlinks(dir)
		assert.Contains(t, []string{doc, filepath.Join(resolved, "doc-1.json")}, name, "file name")
	case <-time.After(5 * time.Second):
		t.Fatal("no file notification")
	}
}
