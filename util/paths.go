// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/hashledger/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsurePlainName - place a bare file name inside a directory
//
// names containing a directory part are rejected
func EnsurePlainName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
		return EnsureAbsolute(directory, name), nil
	default:
		return "", fault.ErrNotPlainFileName
	}
}

// DataDirectory - resolve the data directory of a configuration file
//
// "." means the directory holding the configuration file; the result
// must be an existing directory
func DataDirectory(configurationFileName string, dataDirectory string) (string, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return "", err
	}

	switch dataDirectory {
	case "", "~":
		return "", fault.ErrInvalidDirectory
	case ".":
		dataDirectory = filepath.Dir(configurationFileName)
	default:
		dataDirectory = EnsureAbsolute(filepath.Dir(configurationFileName), dataDirectory)
	}

	info, err := os.Stat(dataDirectory)
	if nil != err {
		return "", err
	}
	if !info.IsDir() {
		return "", fault.ErrInvalidDirectory
	}
	return dataDirectory, nil
}
