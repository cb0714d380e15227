// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/util"
)

// validity of generated certificates
const validity = 10 * 365 * 24 * time.Hour

// Get - TLS configuration from PEM certificate and key text
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])
	return tlsConfiguration, fin, nil
}

// Load - TLS configuration from PEM files
func Load(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := os.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := os.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// Fingerprint - SHA3-256 of a DER certificate
//
//   openssl x509 -outform DER -in hashledgerd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

// Generate - a self signed certificate and key in PEM form
func Generate(name string, extraHosts []string) ([]byte, []byte, error) {
	org := "hashledgerd self signed cert for: " + name
	return certgen.NewTLSCertPair(org, time.Now().Add(validity), false, extraHosts)
}

// MakeSelfSigned - write a new self signed certificate and key,
// refusing to replace existing files
func MakeSelfSigned(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if util.EnsureFileExists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}
	if util.EnsureFileExists(keyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	certificate, key, err := Generate(name, extraHosts)
	if nil != err {
		return err
	}

	if err := os.WriteFile(certificateFileName, certificate, 0o666); nil != err {
		return err
	}
	if err := os.WriteFile(keyFileName, key, 0o600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}
