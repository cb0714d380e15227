// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - the structure for a pool access
type PoolHandle struct {
	prefix   byte
	scope    []byte
	database *Database
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Scoped - a handle restricted to keys beginning with scope
//
// used to give each facade its own range inside a shared pool
func (p *PoolHandle) Scoped(scope []byte) *PoolHandle {
	s := make([]byte, 0, len(p.scope)+len(scope))
	s = append(s, p.scope...)
	s = append(s, scope...)
	return &PoolHandle{
		prefix:   p.prefix,
		scope:    s,
		database: p.database,
	}
}

// Prefix - the one byte table tag
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix and scope onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, 1+len(p.scope)+len(key))
	prefixedKey[0] = p.prefix
	prefixedKey = append(prefixedKey, p.scope...)
	return append(prefixedKey, key...)
}

// the key range covered by this handle
func (p *PoolHandle) keyRange() *util.Range {
	return util.BytesPrefix(p.prefixKey(nil))
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return nil
	}
	value, err := p.database.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode the first 8 bytes as big endian uint64
//
// the second parameter is false if record was not found or too short
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	return decodeN(p.Get(key))
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return false
	}
	value, err := p.database.db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// LastElement - get the last element in a pool
func (p *PoolHandle) LastElement() (Element, bool) {
	p.database.RLock()
	defer p.database.RUnlock()

	if nil == p.database.db {
		return Element{}, false
	}

	iter := p.database.db.NewIterator(p.keyRange(), nil)
	defer iter.Release()

	found := false
	result := Element{}
	if iter.Last() {
		result.Key = p.stripKey(iter.Key())
		result.Value = copyBytes(iter.Value())
		found = true
	}
	logger.PanicIfError("pool.LastElement", iter.Error())

	return result, found
}

// remove prefix and scope, returning a copy
func (p *PoolHandle) stripKey(key []byte) []byte {
	return copyBytes(key[1+len(p.scope):])
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func decodeN(buffer []byte) (uint64, bool) {
	if len(buffer) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func encodeN(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}
