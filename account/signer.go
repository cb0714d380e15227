// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/hashledger/fault"
)

const (
	seedLength = ed25519.SeedSize
)

// seed text header: magic ++ version ++ reserved
var seedHeader = []byte{0x5a, 0xfe, 0x01, 0x00}

// Signer - a signing identity
type Signer struct {
	sync.Mutex
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	address    Address
	lastNonce  uint64
}

// NewSeed - create a new seed from secure random data, returned in text form
func NewSeed() (string, error) {
	seedCore := make([]byte, seedLength)
	_, err := rand.Read(seedCore)
	if nil != err {
		return "", err
	}
	return encodeSeed(seedCore), nil
}

func encodeSeed(seedCore []byte) string {
	packedSeed := make([]byte, 0, len(seedHeader)+seedLength+checksumLength)
	packedSeed = append(packedSeed, seedHeader...)
	packedSeed = append(packedSeed, seedCore...)
	checksum := sha3.Sum256(packedSeed)
	packedSeed = append(packedSeed, checksum[:checksumLength]...)
	return base58.Encode(packedSeed)
}

// NewSignerFromSeed - recreate the identity from its text seed
func NewSignerFromSeed(seed string) (*Signer, error) {
	packedSeed, err := base58.Decode(seed)
	if nil != err || len(seedHeader)+seedLength+checksumLength != len(packedSeed) {
		return nil, fault.ErrInvalidKeyLength
	}
	if !bytes.Equal(seedHeader, packedSeed[:len(seedHeader)]) {
		return nil, fault.ErrInvalidKeyLength
	}
	checksumStart := len(packedSeed) - checksumLength
	checksum := sha3.Sum256(packedSeed[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], packedSeed[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return NewSigner(packedSeed[len(seedHeader):checksumStart])
}

// NewSigner - create an identity from a 32 byte raw seed
func NewSigner(seedCore []byte) (*Signer, error) {
	if seedLength != len(seedCore) {
		return nil, fault.ErrInvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seedCore)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	address, err := FromPublicKey(publicKey)
	if nil != err {
		return nil, err
	}
	return &Signer{
		privateKey: privateKey,
		publicKey:  publicKey,
		address:    address,
	}, nil
}

// Address - the ledger identity of this signer
func (s *Signer) Address() Address {
	return s.address
}

// PublicKey - copy of the public key
func (s *Signer) PublicKey() []byte {
	return append([]byte{}, s.publicKey...)
}

// Sign - ed25519 signature of message
func (s *Signer) Sign(message []byte) []byte {
	return ed25519.Sign(s.privateKey, message)
}

// NextNonce - strictly increasing per signer, seeded from the clock so
// that a restarted process does not reuse an earlier value
func (s *Signer) NextNonce() uint64 {
	s.Lock()
	defer s.Unlock()
	n := uint64(time.Now().UnixNano())
	if n <= s.lastNonce {
		n = s.lastNonce + 1
	}
	s.lastNonce = n
	return n
}

// CheckSignature - verify a signature made by the holder of publicKey
func CheckSignature(publicKey []byte, message []byte, signature []byte) error {
	if ed25519.PublicKeySize != len(publicKey) {
		return fault.ErrInvalidKeyLength
	}
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(publicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
