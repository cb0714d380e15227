// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// signing identities with fixed keys
var (
	Owner    *account.Signer
	Admin    *account.Signer
	Stranger *account.Signer
	NewOwner *account.Signer
)

func init() {
	Owner = mustSigner(0x01)
	Admin = mustSigner(0x02)
	Stranger = mustSigner(0x03)
	NewOwner = mustSigner(0x04)
}

func mustSigner(fill byte) *account.Signer {
	s, err := account.NewSigner(bytes.Repeat([]byte{fill}, 32))
	if nil != err {
		panic(err)
	}
	return s
}

// SetupTestLogger - log critical messages to a file in the testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the testing directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// Dir - the testing directory
func Dir() string {
	return dir
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
