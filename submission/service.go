// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/throttle"
)

// Options - collaborators of a service
//
// a nil Ledger selects mock mode, Store may be nil if documents are
// persisted by the caller
type Options struct {
	Ledger    Ledger
	Throttler *throttle.Throttler
	Store     document.Store
	Encoding  string
}

// Result - outcome of a write
type Result struct {
	Success          bool           `json:"success"`
	MockMode         bool           `json:"mockMode"`
	TransactionHash  digest.Digest  `json:"transactionHash"`
	VerificationHash digest.Digest  `json:"verificationHash"`
	Revision         uint64         `json:"revision,omitempty"`
	Batches          []BatchReceipt `json:"batches,omitempty"`
}

// BatchReceipt - one ledger batch of a batch verification
type BatchReceipt struct {
	BatchId         digest.Digest `json:"batchId"`
	TransactionHash digest.Digest `json:"transactionHash"`
	Recorded        []string      `json:"recorded"`
	Skipped         []string      `json:"skipped,omitempty"`
}

// Service - verifies documents against the ledger
type Service struct {
	sync.RWMutex

	ledger    Ledger
	throttler *throttle.Throttler
	store     document.Store
	encoding  keyspace.Encoding
	others    []keyspace.Encoding
	clock     func() time.Time
	log       *logger.L
}

// New - create a service
func New(options Options) (*Service, error) {
	name := options.Encoding
	if "" == name {
		name = keyspace.Text
	}
	encoding, err := keyspace.Get(name)
	if nil != err {
		return nil, err
	}
	if nil != options.Ledger && nil == options.Throttler {
		return nil, fault.ErrMissingParameters
	}

	others := make([]keyspace.Encoding, 0, 1)
	for _, e := range keyspace.All() {
		if e.Name() != encoding.Name() {
			others = append(others, e)
		}
	}

	s := &Service{
		ledger:    options.Ledger,
		throttler: options.Throttler,
		store:     options.Store,
		encoding:  encoding,
		others:    others,
		clock:     time.Now,
		log:       logger.New("submission"),
	}
	if s.IsMockMode() {
		s.log.Warn("no ledger configured: running in mock mode")
	}
	return s, nil
}

// SetClock - replace the source of lastVerifiedAt
func (s *Service) SetClock(clock func() time.Time) {
	s.Lock()
	s.clock = clock
	s.Unlock()
}

func (s *Service) now() time.Time {
	s.RLock()
	defer s.RUnlock()
	return s.clock().UTC()
}

// IsMockMode - true when no ledger is configured
func (s *Service) IsMockMode() bool {
	return nil == s.ledger
}

// Encoding - name of the key space written by this service
func (s *Service) Encoding() string {
	return s.encoding.Name()
}

func mockResult() *Result {
	return &Result{
		Success:  false,
		MockMode: true,
	}
}

// VerifyDocument - write the hash of a document and stamp it verified
func (s *Service) VerifyDocument(ctx context.Context, doc document.Document, tableId string, signer *account.Signer) (*Result, error) {
	if s.IsMockMode() {
		return mockResult(), nil
	}
	if nil == doc || nil == signer {
		return nil, fault.ErrMissingParameters
	}
	recordId := doc.Id()
	if _, err := keyspace.Key(s.encoding, tableId, recordId); nil != err {
		return nil, err
	}

	hash, _, err := document.Hash(doc)
	if nil != err {
		return nil, err
	}

	if err := s.checkKeySpace(ctx, tableId, recordId); nil != err {
		return nil, err
	}

	var receipt *ledger.Receipt
	err = s.throttler.Execute(ctx, throttle.Verification, func() error {
		var err error
		receipt, err = s.submit(ctx, signer, ledger.UpdateRecordHash(s.encoding.Name(), tableId, recordId, hash))
		return err
	})
	if nil != err {
		s.log.Warnf("verify: %s/%s  error: %s", tableId, recordId, err)
		return nil, err
	}

	var meta ledger.Metadata
	if err := receipt.Result.Decode(&meta); nil != err {
		return nil, err
	}

	v := doc.Verification()
	v.IsVerified = true
	v.LastVerifiedAt = s.now()
	v.TransactionHash = receipt.TxId
	v.VerificationHash = hash

	s.log.Infof("verified: %s/%s  hash: %s  revision: %d", tableId, recordId, hash, meta.Revision)

	result := &Result{
		Success:          true,
		TransactionHash:  receipt.TxId,
		VerificationHash: hash,
		Revision:         meta.Revision,
	}
	return result, s.save(doc)
}

// ArchiveDocumentVerification - archive the record of a document
func (s *Service) ArchiveDocumentVerification(ctx context.Context, doc document.Document, tableId string, signer *account.Signer) (*Result, error) {
	return s.change(ctx, doc, tableId, signer, throttle.Archiving, ledger.MethodArchiveRecord, func(v *document.Verification) {
		v.IsArchived = true
	})
}

// RestoreDocumentVerification - restore the archived record of a document
func (s *Service) RestoreDocumentVerification(ctx context.Context, doc document.Document, tableId string, signer *account.Signer) (*Result, error) {
	return s.change(ctx, doc, tableId, signer, throttle.Restoration, ledger.MethodRestoreRecord, func(v *document.Verification) {
		v.IsArchived = false
	})
}

// DeleteDocumentVerification - erase the record of a document and
// clear its verification status
func (s *Service) DeleteDocumentVerification(ctx context.Context, doc document.Document, tableId string, signer *account.Signer) (*Result, error) {
	return s.change(ctx, doc, tableId, signer, throttle.Deletion, ledger.MethodDeleteRecordHash, func(v *document.Verification) {
		*v = document.Verification{}
	})
}

// common part of the lifecycle wrappers
func (s *Service) change(ctx context.Context, doc document.Document, tableId string, signer *account.Signer, operation throttle.Operation, method string, update func(v *document.Verification)) (*Result, error) {
	if s.IsMockMode() {
		return mockResult(), nil
	}
	if nil == doc || nil == signer {
		return nil, fault.ErrMissingParameters
	}
	recordId := doc.Id()
	if _, err := keyspace.Key(s.encoding, tableId, recordId); nil != err {
		return nil, err
	}

	var receipt *ledger.Receipt
	err := s.throttler.Execute(ctx, operation, func() error {
		var err error
		receipt, err = s.submit(ctx, signer, ledger.RecordCall(method, s.encoding.Name(), tableId, recordId))
		return err
	})
	if nil != err {
		s.log.Warnf("%s: %s/%s  error: %s", method, tableId, recordId, err)
		return nil, err
	}

	update(doc.Verification())
	s.log.Infof("%s: %s/%s  tx: %s", method, tableId, recordId, receipt.TxId)

	result := &Result{
		Success:         true,
		TransactionHash: receipt.TxId,
	}
	return result, s.save(doc)
}

// submit a write, rejections become ledger errors while transport
// and cancellation failures keep their own class
func (s *Service) submit(ctx context.Context, signer *account.Signer, call *ledger.Call) (*ledger.Receipt, error) {
	receipt, err := s.ledger.Submit(ctx, signer, call)
	if nil == err {
		return receipt, nil
	}
	if fault.IsErrAvailability(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return nil, fault.NewLedgerError(err)
}

func (s *Service) query(ctx context.Context, call *ledger.Call, v interface{}) error {
	result, err := s.ledger.Query(ctx, call)
	if nil != err {
		return err
	}
	return result.Decode(v)
}

// a record may only be tracked in one key space
func (s *Service) checkKeySpace(ctx context.Context, tableId string, recordId string) error {
	for _, other := range s.others {

		// identifiers the other encoding cannot represent cannot be there
		if _, err := keyspace.Key(other, tableId, recordId); nil != err {
			continue
		}

		exists := false
		err := s.query(ctx, ledger.RecordCall(ledger.MethodRecordExists, other.Name(), tableId, recordId), &exists)
		if nil != err {
			return err
		}
		if exists {
			return fault.ErrRecordInOtherKeySpace
		}
	}
	return nil
}

func (s *Service) save(doc document.Document) error {
	if nil == s.store {
		return nil
	}
	err := s.store.Save(doc)
	if nil != err {
		s.log.Errorf("save document: %s  error: %s", doc.Id(), err)
	}
	return err
}
