// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"

	"github.com/google/uuid"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/throttle"
)

type batchEntry struct {
	doc  document.Document
	hash digest.Digest
}

// NewBatchId - a fresh one time batch identifier
//
// the digest of a version 7 UUID: millisecond time then random bits
func NewBatchId() (digest.Digest, error) {
	id, err := uuid.NewV7()
	if nil != err {
		return digest.Zero, err
	}
	return digest.NewDigest(id[:]), nil
}

// VerifyDocumentBatch - write the hashes of many documents
//
// documents are split into chunks of the throttler's maximum batch
// size, each submitted as one batch with its own batch id; documents
// in a chunk share that chunk's transaction hash. Documents whose
// record is archived are skipped by the ledger and left unchanged.
//
// on error the documents of chunks already written remain stamped and
// the result describes those chunks
func (s *Service) VerifyDocumentBatch(ctx context.Context, docs []document.Document, tableId string, signer *account.Signer) (*Result, error) {
	if s.IsMockMode() {
		return mockResult(), nil
	}
	if nil == signer {
		return nil, fault.ErrMissingParameters
	}
	if 0 == len(docs) {
		return nil, fault.ErrEmptyBatch
	}

	entries := make([]batchEntry, len(docs))
	for i, doc := range docs {
		if nil == doc {
			return nil, fault.ErrMissingParameters
		}
		if _, err := keyspace.Key(s.encoding, tableId, doc.Id()); nil != err {
			return nil, err
		}
		hash, _, err := document.Hash(doc)
		if nil != err {
			return nil, err
		}
		entries[i] = batchEntry{doc: doc, hash: hash}
	}

	for _, e := range entries {
		if err := s.checkKeySpace(ctx, tableId, e.doc.Id()); nil != err {
			return nil, err
		}
	}

	receipts, err := throttle.Split(ctx, s.throttler, entries, func(chunk []batchEntry) ([]BatchReceipt, error) {
		r, err := s.submitBatch(ctx, chunk, tableId, signer)
		if nil != err {
			return nil, err
		}
		return []BatchReceipt{*r}, nil
	})

	result := &Result{
		Success: nil == err,
		Batches: receipts,
	}
	if len(receipts) > 0 {
		result.TransactionHash = receipts[0].TransactionHash
	}
	if nil != err {
		s.log.Warnf("batch: %d documents  completed batches: %d  error: %s", len(docs), len(receipts), err)
		return result, err
	}
	return result, nil
}

// write one chunk and stamp the recorded documents
func (s *Service) submitBatch(ctx context.Context, chunk []batchEntry, tableId string, signer *account.Signer) (*BatchReceipt, error) {
	batchId, err := NewBatchId()
	if nil != err {
		return nil, err
	}

	n := len(chunk)
	tableIds := make([]string, n)
	recordIds := make([]string, n)
	hashes := make([]digest.Digest, n)
	for i, e := range chunk {
		tableIds[i] = tableId
		recordIds[i] = e.doc.Id()
		hashes[i] = e.hash
	}

	receipt, err := s.submit(ctx, signer, ledger.UpdateBatchRecordHashes(s.encoding.Name(), batchId, tableIds, recordIds, hashes))
	if nil != err {
		return nil, err
	}

	var outcome ledger.BatchOutcome
	if err := receipt.Result.Decode(&outcome); nil != err {
		return nil, err
	}

	skipped := make(map[int]struct{}, len(outcome.Skipped))
	for _, i := range outcome.Skipped {
		skipped[i] = struct{}{}
	}

	r := &BatchReceipt{
		BatchId:         batchId,
		TransactionHash: receipt.TxId,
		Recorded:        make([]string, 0, n),
	}
	now := s.now()
	for i, e := range chunk {
		if _, ok := skipped[i]; ok {
			r.Skipped = append(r.Skipped, recordIds[i])
			continue
		}
		v := e.doc.Verification()
		v.IsVerified = true
		v.LastVerifiedAt = now
		v.TransactionHash = receipt.TxId
		v.VerificationHash = e.hash
		r.Recorded = append(r.Recorded, recordIds[i])

		if err := s.save(e.doc); nil != err {
			return nil, err
		}
	}

	s.log.Infof("batch: %s  recorded: %d  skipped: %d  tx: %s", batchId, len(r.Recorded), len(r.Skipped), receipt.TxId)
	return r, nil
}
