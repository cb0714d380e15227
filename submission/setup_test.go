// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission_test

import (
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/storage"
	"github.com/bitmark-inc/hashledger/submission"
	"github.com/bitmark-inc/hashledger/throttle"
)

const testTable = "todos"

func testNow() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

// documents kept in memory, counting saves
type memoryStore struct {
	sync.Mutex
	docs  map[string]document.Document
	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		docs: make(map[string]document.Document),
	}
}

func (m *memoryStore) Load(id string) (document.Document, error) {
	m.Lock()
	defer m.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, fault.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *memoryStore) Save(doc document.Document) error {
	m.Lock()
	defer m.Unlock()
	m.docs[doc.Id()] = doc
	m.saves += 1
	return nil
}

func (m *memoryStore) Saves() int {
	m.Lock()
	defer m.Unlock()
	return m.saves
}

type testSetup struct {
	db        *storage.Database
	facade    *ledger.Facade
	local     *submission.LocalLedger
	throttler *throttle.Throttler
	store     *memoryStore
	service   *submission.Service
}

// a deployed facade owned by fixtures.Owner with an in-process client
func setupTestService(t *testing.T, settings throttle.Settings) *testSetup {
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

	f := factory.New(db, registry, nil)
	facade, _, err := f.Deploy(module.Address(), fixtures.Owner.Address(), 60)
	if nil != err {
		t.Fatalf("deploy error: %s", err)
	}

	th, err := throttle.New(settings)
	if nil != err {
		t.Fatalf("throttler error: %s", err)
	}
	th.Start()

	store := newMemoryStore()
	local := submission.NewLocalLedger(facade)
	service, err := submission.New(submission.Options{
		Ledger:    local,
		Throttler: th,
		Store:     store,
	})
	if nil != err {
		t.Fatalf("service error: %s", err)
	}
	service.SetClock(testNow)

	return &testSetup{
		db:        db,
		facade:    facade,
		local:     local,
		throttler: th,
		store:     store,
		service:   service,
	}
}

func (s *testSetup) teardown() {
	s.throttler.Stop()
	s.db.Close()
	fixtures.TeardownTestLogger()
}
