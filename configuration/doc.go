// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua configuration files and watchers
//
// a configuration file is a Lua chunk returning a table; most of base
// Lua is available so files can read the environment with os.getenv
// or compute values from other settings.
//
// Watchers report changes to the configuration file of a running
// program and to the files of a document directory.
package configuration
