// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/hashledger/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool:     p,
		maxRange: *p.keyRange(),
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	d := cursor.pool.database
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	iter := d.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	var lastKey []byte
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		lastKey = copyBytes(key)

		e := Element{
			Key:   cursor.pool.stripKey(key),
			Value: copyBytes(iter.Value()),
		}
		results = append(results, e)
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	// smallest key strictly after the last one returned
	if nil != lastKey {
		cursor.maxRange.Start = append(lastKey, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	d := cursor.pool.database
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.ErrDatabaseIsNotSet
	}

	iter := d.db.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {
		err = f(cursor.pool.stripKey(iter.Key()), copyBytes(iter.Value()))
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
