// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - fixed width one-way hash used both as a record key
// and as the stored integrity value
package digest

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/hashledger/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - a SHA3-256 value, the all zero value means "absent"
// to convert to bytes just use d[:]
type Digest [Length]byte

// Zero - the absent digest
var Zero Digest

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// NewDigestString - digest of the UTF-8 bytes of a string
func NewDigestString(s string) Digest {
	return sha3.Sum256([]byte(s))
}

// IsZero - true for the absent value
func (digest Digest) IsZero() bool {
	return Zero == digest
}

// String - hex for the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - for %#v
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest, an optional 0x
// prefix is accepted
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(s) > 2 && '0' == s[0] && ('x' == s[1] || 'X' == s[1]) {
		s = s[2:]
	}
	if Length != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidDigest
	}
	buffer := make([]byte, Length)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// FromString - parse hex text to a digest
func FromString(s string) (Digest, error) {
	var d Digest
	err := d.UnmarshalText([]byte(strings.TrimSpace(s)))
	return d, err
}

// FromBytes - convert and validate binary byte slice to a digest
func FromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}
