// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package document

import (
	"time"

	"github.com/bitmark-inc/hashledger/digest"
)

// Document - anything whose content can be verified against the ledger
type Document interface {
	// identifier, used as the record id
	Id() string

	// deterministic key sorted text of the semantic fields only
	Canonicalise() (string, error)

	// the mutable verification status
	Verification() *Verification
}

// Store - the collaborator that holds documents
type Store interface {
	Load(id string) (Document, error)
	Save(doc Document) error
}

// Verification - status written back after a ledger write
type Verification struct {
	IsVerified       bool          `json:"isVerified"`
	LastVerifiedAt   time.Time     `json:"lastVerifiedAt"`
	TransactionHash  digest.Digest `json:"transactionHash"`
	VerificationHash digest.Digest `json:"verificationHash"`
	IsArchived       bool          `json:"isArchived,omitempty"`
}

// Hash - digest of a document's canonical form
func Hash(doc Document) (digest.Digest, string, error) {
	canonical, err := doc.Canonicalise()
	if nil != err {
		return digest.Zero, "", err
	}
	return digest.NewDigestString(canonical), canonical, nil
}
