// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/hashledger/fault"
)

// Transaction - an atomic group of writes
//
// only one transaction is open at a time, so every committed
// transaction observes all those committed before it
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transaction struct {
	sync.Mutex
	database *Database
	batch    *leveldb.Batch
	cache    *dbCache
	inUse    bool
}

func newTransaction(d *Database) *transaction {
	return &transaction{
		database: d,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

// Begin - wait for exclusive write access and open a transaction
func (d *Database) Begin() (Transaction, error) {
	if d.readOnly {
		return nil, fault.ErrDatabaseIsReadOnly
	}

	d.writer.Lock()

	t := d.trx
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		d.writer.Unlock()
		return nil, fault.ErrTransactionAlreadyInUse
	}
	t.inUse = true

	return t, nil
}

// Put - add or replace a value
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	prefixedKey := p.prefixKey(key)
	v := copyBytes(value)
	t.batch.Put(prefixedKey, v)
	t.cache.Set(dbPut, string(prefixedKey), v)
}

// PutN - store a uint64 as an 8 byte big endian value
func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	t.Put(p, key, encodeN(value))
}

// Delete - remove a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.Lock()
	defer t.Unlock()

	prefixedKey := p.prefixKey(key)
	t.batch.Delete(prefixedKey)
	t.cache.Set(dbDelete, string(prefixedKey), nil)
}

// Get - read a value, including writes pending in this transaction
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	t.Lock()
	value, cached, found := t.cache.Get(string(p.prefixKey(key)))
	t.Unlock()

	if cached {
		if !found {
			return nil
		}
		return value
	}
	return p.Get(key)
}

// GetN - read a uint64, including writes pending in this transaction
func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(t.Get(p, key))
}

// Has - check a key, including writes pending in this transaction
func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	t.Lock()
	_, cached, found := t.cache.Get(string(p.prefixKey(key)))
	t.Unlock()

	if cached {
		return found
	}
	return p.Has(key)
}

// Commit - write all pending changes and release the transaction
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrNotInitialised
	}

	t.database.RLock()
	var err error
	if nil == t.database.db {
		err = fault.ErrDatabaseIsNotSet
	} else {
		err = t.database.db.Write(t.batch, nil)
	}
	t.database.RUnlock()

	t.finish()
	return err
}

// Abort - discard all pending changes and release the transaction
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return
	}
	t.finish()
}

// must hold the lock
func (t *transaction) finish() {
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
	t.database.writer.Unlock()
}
