// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
)

// packed size: timestamp ++ updatedBy ++ updateCount ++ revision ++ archived
const packedMetadataLength = 8 + account.AddressLength + 8 + 8 + 1

// Metadata - bookkeeping stored alongside each record hash
type Metadata struct {
	Timestamp   time.Time       `json:"timestamp"`
	UpdatedBy   account.Address `json:"updatedBy"`
	UpdateCount uint64          `json:"updateCount"`
	Revision    uint64          `json:"revision"`
	IsArchived  bool            `json:"isArchived"`
}

// Pack - fixed width big endian form
func (m *Metadata) Pack() []byte {
	buffer := make([]byte, packedMetadataLength)
	binary.BigEndian.PutUint64(buffer[0:8], uint64(m.Timestamp.UnixNano()))
	n := 8
	copy(buffer[n:], m.UpdatedBy[:])
	n += account.AddressLength
	binary.BigEndian.PutUint64(buffer[n:n+8], m.UpdateCount)
	n += 8
	binary.BigEndian.PutUint64(buffer[n:n+8], m.Revision)
	n += 8
	if m.IsArchived {
		buffer[n] = 1
	}
	return buffer
}

// UnpackMetadata - reverse of Pack
func UnpackMetadata(buffer []byte) (*Metadata, error) {
	if packedMetadataLength != len(buffer) {
		return nil, fault.ErrInvalidKeyLength
	}
	m := &Metadata{
		Timestamp: time.Unix(0, int64(binary.BigEndian.Uint64(buffer[0:8]))).UTC(),
	}
	n := 8
	copy(m.UpdatedBy[:], buffer[n:n+account.AddressLength])
	n += account.AddressLength
	m.UpdateCount = binary.BigEndian.Uint64(buffer[n : n+8])
	n += 8
	m.Revision = binary.BigEndian.Uint64(buffer[n : n+8])
	n += 8
	m.IsArchived = 0 != buffer[n]
	return m, nil
}
