// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/hashledger/fault"
)

// miscellaneous constants
const (
	AddressLength  = 20
	checksumLength = 4

	// leading byte of the text form
	addressVersion = 0x48
)

// Address - identity of a signer, a logic module or a facade
type Address [AddressLength]byte

// ZeroAddress - never a valid governance argument
var ZeroAddress Address

// FromPublicKey - the last 20 bytes of SHA3-256(public key)
func FromPublicKey(publicKey []byte) (Address, error) {
	var a Address
	if ed25519.PublicKeySize != len(publicKey) {
		return a, fault.ErrInvalidKeyLength
	}
	d := sha3.Sum256(publicKey)
	copy(a[:], d[len(d)-AddressLength:])
	return a, nil
}

// NewContractAddress - address for something deployed rather than
// owned by a key, derived from a kind tag and the parts that make it
// unique
func NewContractAddress(kind string, parts ...[]byte) Address {
	h := sha3.New256()
	h.Write([]byte(kind))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
	}
	d := h.Sum(nil)

	var a Address
	copy(a[:], d[len(d)-AddressLength:])
	return a
}

// IsZero - true for the zero address
func (a Address) IsZero() bool {
	return ZeroAddress == a
}

// String - base58 of version ++ address ++ checksum
func (a Address) String() string {
	buffer := make([]byte, 0, 1+AddressLength+checksumLength)
	buffer = append(buffer, addressVersion)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert an address to its Base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from Base58
func (a *Address) UnmarshalText(s []byte) error {
	address, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}

// AddressFromBase58 - decode and verify the checksum
func AddressFromBase58(s string) (Address, error) {
	var a Address

	decoded, err := base58.Decode(s)
	if nil != err || 1+AddressLength+checksumLength != len(decoded) {
		return a, fault.ErrCannotDecodeAddress
	}
	if addressVersion != decoded[0] {
		return a, fault.ErrInvalidAddress
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ErrChecksumMismatch
	}

	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// AddressFromBytes - raw 20 byte form as stored in the ledger
func AddressFromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}
