// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/messagebus"
	"github.com/bitmark-inc/hashledger/storage"
)

const testDelay = 3600

type testClock struct {
	sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.Lock()
	c.now = c.now.Add(d)
	c.Unlock()
}

func testNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

type testLedger struct {
	db       *storage.Database
	registry *ledger.Registry
	module   *ledger.Module
	facade   *ledger.Facade
	bus      *messagebus.BroadcastQueue
	clock    *testClock
}

func setupTestLedger(t *testing.T) *testLedger {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open database error: %s", err)
	}

	registry := ledger.NewRegistry()
	module := ledger.NewDefaultModule()
	if err := registry.Register(module); nil != err {
		t.Fatalf("register error: %s", err)
	}

	address := account.NewContractAddress("facade", []byte(t.Name()))
	bus := messagebus.NewBroadcast()
	facade := ledger.NewFacade(address, db, registry, bus)

	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	err = facade.State().Initialise(trx, fixtures.Owner.Address(), testDelay, module)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	clock := &testClock{now: testNow()}
	facade.SetClock(clock.Now)

	return &testLedger{
		db:       db,
		registry: registry,
		module:   module,
		facade:   facade,
		bus:      bus,
		clock:    clock,
	}
}

func (l *testLedger) teardown() {
	l.db.Close()
	fixtures.TeardownTestLogger()
}

func (l *testLedger) submit(signer *account.Signer, call *ledger.Call) (*ledger.Result, error) {
	tx := ledger.NewSignedTransaction(signer, l.facade.Address(), call)
	receipt, err := l.facade.Submit(tx)
	if nil != err {
		return nil, err
	}
	return receipt.Result, nil
}

func (l *testLedger) query(t *testing.T, call *ledger.Call, v interface{}) {
	result, err := l.facade.Query(call)
	assert.Nil(t, err, "query: %s", call.Method)
	assert.Nil(t, result.Decode(v), "decode: %s", call.Method)
}

func (l *testLedger) hash(t *testing.T, encoding string, tableId string, recordId string) digest.Digest {
	var d digest.Digest
	l.query(t, ledger.RecordCall(ledger.MethodGetRecordHash, encoding, tableId, recordId), &d)
	return d
}

func (l *testLedger) metadata(t *testing.T, encoding string, tableId string, recordId string) *ledger.Metadata {
	var m ledger.Metadata
	l.query(t, ledger.RecordCall(ledger.MethodGetRecordMetadata, encoding, tableId, recordId), &m)
	return &m
}

func (l *testLedger) flag(t *testing.T, call *ledger.Call) bool {
	var b bool
	l.query(t, call, &b)
	return b
}

func (l *testLedger) eventCount(t *testing.T) int {
	events, err := l.facade.Events(0, 1000)
	assert.Nil(t, err, "events")
	return len(events)
}
