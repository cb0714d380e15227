// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"

	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/ledger"
)

// IntegrityStatus - comparison of a document with its stored hash
type IntegrityStatus string

// possible statuses
const (
	NotVerified IntegrityStatus = "NOT_VERIFIED"
	Valid       IntegrityStatus = "VALID"
	Tampered    IntegrityStatus = "TAMPERED"
)

// Integrity - result of an integrity check
type Integrity struct {
	Status      IntegrityStatus `json:"status"`
	MockMode    bool            `json:"mockMode"`
	CurrentHash digest.Digest   `json:"currentHash"`
	StoredHash  digest.Digest   `json:"storedHash"`
}

// CheckDocumentIntegrity - recompute the hash of a document and
// compare it with the one on the ledger
func (s *Service) CheckDocumentIntegrity(ctx context.Context, doc document.Document, tableId string) (*Integrity, error) {
	if s.IsMockMode() {
		return &Integrity{
			Status:   NotVerified,
			MockMode: true,
		}, nil
	}
	if nil == doc {
		return nil, fault.ErrMissingParameters
	}
	recordId := doc.Id()
	if _, err := keyspace.Key(s.encoding, tableId, recordId); nil != err {
		return nil, err
	}

	current, _, err := document.Hash(doc)
	if nil != err {
		return nil, err
	}

	var stored digest.Digest
	err = s.query(ctx, ledger.RecordCall(ledger.MethodGetRecordHash, s.encoding.Name(), tableId, recordId), &stored)
	if nil != err {
		return nil, err
	}

	integrity := &Integrity{
		CurrentHash: current,
		StoredHash:  stored,
	}
	switch {
	case stored.IsZero():
		integrity.Status = NotVerified
	case stored == current:
		integrity.Status = Valid
	default:
		integrity.Status = Tampered
	}

	s.log.Debugf("integrity: %s/%s  status: %s", tableId, recordId, integrity.Status)
	return integrity, nil
}
