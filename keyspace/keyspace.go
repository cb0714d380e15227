// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyspace - record key encodings
//
// a record key is derived from the table and record identifiers:
//
//   key = SHA3-256( encode(tableId) ++ encode(recordId) )
//
// two encodings exist, each with its own hash and metadata tables in
// the ledger:
//
//   text  - UTF-8 bytes of the identifier, "" is the zero value
//   fixed - identifier right padded with 0x00 to 32 bytes, all zero
//           bytes is the zero value (identifiers over 32 bytes rejected)
package keyspace

import (
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
)

// names of the supported encodings
const (
	Text  = "text"
	Fixed = "fixed"
)

// FixedWidth - byte size of a fixed width identifier
const FixedWidth = 32

// Encoding - strategy for turning identifiers into key bytes
type Encoding interface {
	Name() string
	Encode(identifier string) ([]byte, error)
	IsZero(encoded []byte) bool
}

// Key - compute the record key for a table/record pair
//
// empty (zero valued) identifiers are rejected
func Key(e Encoding, tableId string, recordId string) (digest.Digest, error) {
	table, err := e.Encode(tableId)
	if nil != err {
		return digest.Zero, err
	}
	record, err := e.Encode(recordId)
	if nil != err {
		return digest.Zero, err
	}
	if e.IsZero(table) || e.IsZero(record) {
		return digest.Zero, fault.ErrEmptyIdentifier
	}

	buffer := make([]byte, 0, len(table)+len(record))
	buffer = append(buffer, table...)
	buffer = append(buffer, record...)
	return digest.NewDigest(buffer), nil
}

// Get - encoding by name
func Get(name string) (Encoding, error) {
	switch name {
	case Text:
		return TextEncoding{}, nil
	case Fixed:
		return FixedEncoding{}, nil
	default:
		return nil, fault.ErrInvalidEncoding
	}
}

// All - every supported encoding in a stable order
func All() []Encoding {
	return []Encoding{TextEncoding{}, FixedEncoding{}}
}

// TextEncoding - variable length human readable identifiers
type TextEncoding struct{}

// Name - encoding name
func (TextEncoding) Name() string { return Text }

// Encode - identifier bytes unchanged
func (TextEncoding) Encode(identifier string) ([]byte, error) {
	return []byte(identifier), nil
}

// IsZero - empty identifier
func (TextEncoding) IsZero(encoded []byte) bool {
	return 0 == len(encoded)
}

// FixedEncoding - 32 byte identifiers, cheaper to write
type FixedEncoding struct{}

// Name - encoding name
func (FixedEncoding) Name() string { return Fixed }

// Encode - pad to the fixed width
func (FixedEncoding) Encode(identifier string) ([]byte, error) {
	if len(identifier) > FixedWidth {
		return nil, fault.ErrIdentifierTooLong
	}
	buffer := make([]byte, FixedWidth)
	copy(buffer, identifier)
	return buffer, nil
}

// IsZero - all bytes zero
func (FixedEncoding) IsZero(encoded []byte) bool {
	for _, b := range encoded {
		if 0 != b {
			return false
		}
	}
	return true
}
