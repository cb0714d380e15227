// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// pending writes of an open transaction so reads inside the
// transaction observe its own changes
type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

// return:
//   value  - the pending value (nil if deleted)
//   cached - true if the key has a pending operation
//   found  - true if the key is present after the pending operation
func (c *dbCache) Get(key string) (value []byte, cached bool, found bool) {
	obj, ok := c.cache.Get(key)
	if !ok {
		return nil, false, false
	}

	data := obj.(cacheData)

	// a deleted key masks anything in the database
	if dbDelete == data.op {
		return nil, true, false
	}

	return data.value, true, true
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
