// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/ledger"
)

func TestUpdateRecordHashIsNotIdempotent(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	for _, encoding := range []string{keyspace.Text, keyspace.Fixed} {
		hash := digest.NewDigestString("content-" + encoding)

		_, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(encoding, "todos", "item-1", hash))
		assert.Nil(t, err, "%s: first update", encoding)

		assert.Equal(t, hash, l.hash(t, encoding, "todos", "item-1"), "%s: stored hash", encoding)
		m := l.metadata(t, encoding, "todos", "item-1")
		assert.Equal(t, uint64(1), m.Revision, "%s: first revision", encoding)
		assert.Equal(t, uint64(1), m.UpdateCount, "%s: first update count", encoding)
		assert.Equal(t, fixtures.Owner.Address(), m.UpdatedBy, "%s: updated by", encoding)
		assert.False(t, m.IsArchived, "%s: archived", encoding)

		// same hash again still counts as a write
		_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(encoding, "todos", "item-1", hash))
		assert.Nil(t, err, "%s: second update", encoding)

		m = l.metadata(t, encoding, "todos", "item-1")
		assert.Equal(t, uint64(2), m.Revision, "%s: second revision", encoding)
		assert.Equal(t, uint64(2), m.UpdateCount, "%s: second update count", encoding)
		assert.Equal(t, hash, l.hash(t, encoding, "todos", "item-1"), "%s: hash unchanged", encoding)
	}
}

func TestUpdateRecordHashEmitsEvent(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	listener := l.bus.Chan(10)
	defer l.bus.Release(listener)

	hash := digest.NewDigestString("payload")
	result, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item-1", hash))
	assert.Nil(t, err, "update")
	assert.Equal(t, 1, len(result.Events), "event count")

	e := result.Events[0]
	assert.Equal(t, ledger.EventRecordHashUpdated, e.Name, "event name")
	var data ledger.RecordHashUpdatedData
	assert.Nil(t, e.Decode(&data), "decode event")
	assert.Equal(t, "todos", data.TableId, "table id")
	assert.Equal(t, "item-1", data.RecordId, "record id")
	assert.Equal(t, hash, data.Hash, "hash")
	assert.Equal(t, uint64(1), data.Revision, "revision")
	assert.True(t, l.clock.Now().Equal(data.Timestamp), "timestamp")

	select {
	case m := <-listener:
		assert.Equal(t, ledger.EventRecordHashUpdated, m.Command, "broadcast command")
	case <-time.After(time.Second):
		t.Errorf("event was not broadcast")
	}

	events, err := l.facade.Events(0, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 1, len(events), "stored events")
	assert.Equal(t, uint64(1), events[0].Sequence, "sequence")
}

func TestUpdateRecordHashValidation(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	hash := digest.NewDigestString("x")

	_, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "", "item", hash))
	assert.True(t, fault.IsErrInvalid(err), "empty table id: %v", err)

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "", hash))
	assert.True(t, fault.IsErrInvalid(err), "empty record id: %v", err)

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Fixed, "todos", "this-identifier-is-longer-than-32-bytes", hash))
	assert.Equal(t, fault.ErrIdentifierTooLong, err, "fixed identifier too long")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash("bogus", "todos", "item", hash))
	assert.Equal(t, fault.ErrInvalidEncoding, err, "unknown encoding")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", digest.Zero))
	assert.Equal(t, fault.ErrInvalidDigest, err, "zero hash")

	_, err = l.submit(fixtures.Stranger, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", hash))
	assert.True(t, fault.IsErrAuthorisation(err), "stranger: %v", err)

	assert.Equal(t, 0, l.eventCount(t), "failed calls leave no events")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Text, "todos", "item")), "nothing written")
}

func TestArchiveAndRestore(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	hash := digest.NewDigestString("v1")
	archive := ledger.RecordCall(ledger.MethodArchiveRecord, keyspace.Text, "todos", "item")
	restore := ledger.RecordCall(ledger.MethodRestoreRecord, keyspace.Text, "todos", "item")

	_, err := l.submit(fixtures.Owner, archive)
	assert.Equal(t, fault.ErrRecordNotFound, err, "archive missing record")
	assert.True(t, fault.IsErrState(err), "archive missing record is a state error")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", hash))
	assert.Nil(t, err, "create")

	_, err = l.submit(fixtures.Owner, restore)
	assert.Equal(t, fault.ErrRecordNotArchived, err, "restore active record")

	_, err = l.submit(fixtures.Owner, archive)
	assert.Nil(t, err, "archive")
	assert.True(t, l.flag(t, ledger.RecordCall(ledger.MethodIsRecordArchived, keyspace.Text, "todos", "item")), "archived flag")
	assert.Equal(t, hash, l.hash(t, keyspace.Text, "todos", "item"), "hash preserved while archived")

	_, err = l.submit(fixtures.Owner, archive)
	assert.Equal(t, fault.ErrRecordArchived, err, "archive twice")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", digest.NewDigestString("v2")))
	assert.True(t, fault.IsErrState(err), "update archived record: %v", err)

	_, err = l.submit(fixtures.Owner, restore)
	assert.Nil(t, err, "restore")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", digest.NewDigestString("v2")))
	assert.Nil(t, err, "update restored record")

	m := l.metadata(t, keyspace.Text, "todos", "item")
	assert.Equal(t, uint64(2), m.Revision, "archive and restore do not count as writes")
	assert.False(t, m.IsArchived, "not archived")
}

func TestDeleteRecordHash(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	remove := ledger.RecordCall(ledger.MethodDeleteRecordHash, keyspace.Fixed, "todos", "item")

	_, err := l.submit(fixtures.Owner, remove)
	assert.Equal(t, fault.ErrRecordNotFound, err, "delete missing record")

	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Fixed, "todos", "item", digest.NewDigestString("v1")))
	assert.Nil(t, err, "create")
	_, err = l.submit(fixtures.Owner, ledger.RecordCall(ledger.MethodArchiveRecord, keyspace.Fixed, "todos", "item"))
	assert.Nil(t, err, "archive")

	_, err = l.submit(fixtures.Stranger, remove)
	assert.True(t, fault.IsErrAuthorisation(err), "stranger delete")

	// archived records can still be deleted
	_, err = l.submit(fixtures.Owner, remove)
	assert.Nil(t, err, "delete")

	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Fixed, "todos", "item")), "exists after delete")
	assert.Equal(t, digest.Zero, l.hash(t, keyspace.Fixed, "todos", "item"), "hash after delete")
	assert.Equal(t, uint64(0), l.metadata(t, keyspace.Fixed, "todos", "item").Revision, "history erased")

	// a new write starts again from revision one
	_, err = l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Fixed, "todos", "item", digest.NewDigestString("v2")))
	assert.Nil(t, err, "recreate")
	assert.Equal(t, uint64(1), l.metadata(t, keyspace.Fixed, "todos", "item").Revision, "revision restarts")
}

func TestReadViewsOnMissingRecords(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	assert.Equal(t, digest.Zero, l.hash(t, keyspace.Text, "todos", "missing"), "missing hash")
	assert.Equal(t, digest.Zero, l.hash(t, keyspace.Text, "", ""), "empty identifiers")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Text, "todos", "missing")), "exists")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodIsRecordArchived, keyspace.Text, "todos", "missing")), "archived")
	assert.Equal(t, uint64(0), l.metadata(t, keyspace.Text, "todos", "missing").UpdateCount, "metadata")

	// no record can exist under an identifier too long for the fixed key space
	long := strings.Repeat("x", keyspace.FixedWidth+1)
	assert.Equal(t, digest.Zero, l.hash(t, keyspace.Fixed, "todos", long), "long id hash")
	m := l.metadata(t, keyspace.Fixed, "todos", long)
	assert.Equal(t, uint64(0), m.UpdateCount, "long id update count")
	assert.True(t, m.Timestamp.IsZero(), "long id timestamp")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Fixed, "todos", long)), "long id exists")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodIsRecordArchived, keyspace.Fixed, long, "item")), "long table archived")
	assert.True(t, l.flag(t, ledger.VerifyRecordHash(keyspace.Fixed, "todos", long, digest.Zero)), "long id zero hash")
	assert.False(t, l.flag(t, ledger.VerifyRecordData(keyspace.Fixed, "todos", long, []byte(`{"a":1}`))), "long id data")

	_, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Fixed, "todos", long, digest.NewDigestString("v1")))
	assert.Equal(t, fault.ErrIdentifierTooLong, err, "long id write")
}

func TestVerifyRecord(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	data := []byte(`{"a":1}`)
	hash := digest.NewDigest(data)

	// a never written record matches the zero hash
	assert.True(t, l.flag(t, ledger.VerifyRecordHash(keyspace.Text, "todos", "item", digest.Zero)), "zero matches absent record")
	assert.False(t, l.flag(t, ledger.VerifyRecordData(keyspace.Text, "todos", "item", data)), "data against absent record")

	_, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", hash))
	assert.Nil(t, err, "update")

	assert.True(t, l.flag(t, ledger.VerifyRecordHash(keyspace.Text, "todos", "item", hash)), "matching hash")
	assert.False(t, l.flag(t, ledger.VerifyRecordHash(keyspace.Text, "todos", "item", digest.Zero)), "zero hash")
	assert.True(t, l.flag(t, ledger.VerifyRecordData(keyspace.Text, "todos", "item", data)), "matching data")
	assert.False(t, l.flag(t, ledger.VerifyRecordData(keyspace.Text, "todos", "item", []byte(`{"a":2}`))), "changed data")
}

func TestKeySpacesAreSeparate(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	_, err := l.submit(fixtures.Owner, ledger.UpdateRecordHash(keyspace.Text, "todos", "item", digest.NewDigestString("v1")))
	assert.Nil(t, err, "update text")

	assert.True(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Text, "todos", "item")), "text exists")
	assert.False(t, l.flag(t, ledger.RecordCall(ledger.MethodRecordExists, keyspace.Fixed, "todos", "item")), "fixed does not")
}

func TestQueryRejectsWrites(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	_, err := l.facade.Query(ledger.UpdateRecordHash(keyspace.Text, "todos", "item", digest.NewDigestString("v1")))
	assert.Equal(t, fault.ErrNotReadOnlyMethod, err, "write through query")

	_, err = l.facade.Query(ledger.NewCall("noSuchMethod", nil))
	assert.NotNil(t, err, "unknown method")
}
