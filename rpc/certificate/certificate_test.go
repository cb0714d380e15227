// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/rpc/certificate"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, err := certificate.Generate("test", []string{"localhost"})
	assert.Nil(t, err, "generate")

	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", string(cer), string(key))
	assert.Nil(t, err, "get")

	pair, _ := tls.X509KeyPair(cer, key)
	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "certificate")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pair")
}

func TestMakeSelfSigned(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "certificate")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	assert.Nil(t, certificate.MakeSelfSigned("rpc", cer, key, nil), "make")

	_, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "rpc", cer, key)
	assert.Nil(t, err, "load")
	assert.NotEqual(t, [32]byte{}, fingerprint, "fingerprint")

	assert.Equal(t, fault.ErrCertificateFileAlreadyExists, certificate.MakeSelfSigned("rpc", cer, key, nil), "existing certificate")
	assert.Nil(t, os.Remove(cer), "remove certificate")
	assert.Equal(t, fault.ErrKeyFileAlreadyExists, certificate.MakeSelfSigned("rpc", cer, key, nil), "existing key")
}
