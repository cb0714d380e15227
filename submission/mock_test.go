// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/submission"
	"github.com/bitmark-inc/hashledger/submission/mocks"
	"github.com/bitmark-inc/hashledger/throttle"
)

func setupMockService(t *testing.T) (*gomock.Controller, *mocks.MockLedger, *mocks.MockStore, *throttle.Throttler, *submission.Service) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctl)
	store := mocks.NewMockStore(ctl)

	th, err := throttle.New(throttle.DefaultSettings())
	if nil != err {
		t.Fatalf("throttler error: %s", err)
	}
	th.Start()

	service, err := submission.New(submission.Options{
		Ledger:    l,
		Throttler: th,
		Store:     store,
	})
	if nil != err {
		t.Fatalf("service error: %s", err)
	}
	return ctl, l, store, th, service
}

func teardownMockService(ctl *gomock.Controller, th *throttle.Throttler) {
	ctl.Finish()
	th.Stop()
	fixtures.TeardownTestLogger()
}

func jsonResult(t *testing.T, method string, v interface{}) *ledger.Result {
	buffer, err := json.Marshal(v)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	return &ledger.Result{
		Method: method,
		Value:  buffer,
	}
}

func TestUnreachableLedgerIsNotALedgerError(t *testing.T) {
	ctl, l, _, th, service := setupMockService(t)
	defer teardownMockService(ctl, th)

	doc := document.NewRecord("doc-1", map[string]interface{}{"a": 1})

	l.EXPECT().Query(gomock.Any(), gomock.Any()).Return(jsonResult(t, ledger.MethodRecordExists, false), nil).Times(1)
	l.EXPECT().Submit(gomock.Any(), fixtures.Owner, gomock.Any()).Return(nil, fault.ErrLedgerUnreachable).Times(1)

	_, err := service.VerifyDocument(context.Background(), doc, testTable, fixtures.Owner)
	assert.Equal(t, fault.ErrLedgerUnreachable, err, "error")
	assert.False(t, fault.IsErrLedger(err), "must not be a ledger rejection")
	assert.True(t, fault.IsErrAvailability(err), "availability")
	assert.Equal(t, document.Verification{}, *doc.Verification(), "document mutated")
}

func TestVerifySavesDocument(t *testing.T) {
	ctl, l, store, th, service := setupMockService(t)
	defer teardownMockService(ctl, th)

	doc := document.NewRecord("doc-1", map[string]interface{}{"a": 1})
	txId := digest.NewDigestString("tx")
	expected := digest.NewDigestString(`{"a":1}`)

	l.EXPECT().Query(gomock.Any(), gomock.Any()).Return(jsonResult(t, ledger.MethodRecordExists, false), nil).Times(1)
	l.EXPECT().Submit(gomock.Any(), fixtures.Admin, gomock.Any()).DoAndReturn(
		func(ctx context.Context, signer interface{}, call *ledger.Call) (*ledger.Receipt, error) {
			var args ledger.RecordArguments
			assert.Nil(t, json.Unmarshal(call.Arguments, &args), "arguments")
			assert.Equal(t, ledger.MethodUpdateRecordHash, call.Method, "method")
			assert.Equal(t, testTable, args.TableId, "table")
			assert.Equal(t, "doc-1", args.RecordId, "record")
			assert.Equal(t, expected, args.Hash, "hash")
			return &ledger.Receipt{
				TxId:   txId,
				Result: jsonResult(t, call.Method, &ledger.Metadata{Revision: 4, UpdateCount: 4}),
			}, nil
		}).Times(1)
	store.EXPECT().Save(doc).Return(nil).Times(1)

	result, err := service.VerifyDocument(context.Background(), doc, testTable, fixtures.Admin)
	assert.Nil(t, err, "verify")
	assert.Equal(t, txId, result.TransactionHash, "tx")
	assert.Equal(t, uint64(4), result.Revision, "revision")
	assert.Equal(t, txId, doc.Verification().TransactionHash, "stamped")
}

func TestSaveFailureIsReported(t *testing.T) {
	ctl, l, store, th, service := setupMockService(t)
	defer teardownMockService(ctl, th)

	doc := document.NewRecord("doc-1", nil)
	failure := errors.New("disk full")

	l.EXPECT().Query(gomock.Any(), gomock.Any()).Return(jsonResult(t, ledger.MethodRecordExists, false), nil).AnyTimes()
	l.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(&ledger.Receipt{
		TxId:   digest.NewDigestString("tx"),
		Result: jsonResult(t, ledger.MethodUpdateRecordHash, &ledger.Metadata{Revision: 1}),
	}, nil).Times(1)
	store.EXPECT().Save(gomock.Any()).Return(failure).Times(1)

	result, err := service.VerifyDocument(context.Background(), doc, testTable, fixtures.Owner)
	assert.Equal(t, failure, err, "save error")
	assert.True(t, result.Success, "the ledger write still happened")
}

func TestLockedOperationNeverReachesLedger(t *testing.T) {
	ctl, l, _, th, service := setupMockService(t)
	defer teardownMockService(ctl, th)

	assert.Nil(t, th.Lock(throttle.Deletion), "lock")

	doc := document.NewRecord("doc-1", nil)
	l.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.DeleteDocumentVerification(context.Background(), doc, testTable, fixtures.Owner)
	assert.Equal(t, fault.ErrOperationLocked, err, "locked")
	assert.True(t, fault.IsErrThrottle(err), "throttle class")
	assert.False(t, fault.IsErrLedger(err), "not a ledger error")
}

func TestOtherKeySpaceQueried(t *testing.T) {
	ctl, l, _, th, service := setupMockService(t)
	defer teardownMockService(ctl, th)

	doc := document.NewRecord("doc-1", nil)
	l.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, call *ledger.Call) (*ledger.Result, error) {
			var args ledger.RecordArguments
			assert.Nil(t, json.Unmarshal(call.Arguments, &args), "arguments")
			assert.Equal(t, ledger.MethodRecordExists, call.Method, "method")
			assert.Equal(t, "fixed", args.Encoding, "encoding")
			return jsonResult(t, call.Method, true), nil
		}).Times(1)
	l.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.VerifyDocument(context.Background(), doc, testTable, fixtures.Owner)
	assert.Equal(t, fault.ErrRecordInOtherKeySpace, err, "key space")
}
