// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free counters for statistics and limits
package counter

import (
	"sync/atomic"
)

// Counter - 64 bit unsigned count safe for concurrent update
//
// the zero value is ready to use
type Counter uint64

// Increment - add one, returns the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract one (wrapping below zero), returns the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Add - add n, returns the new value
func (c *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64((*uint64)(c), n)
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true if the count is zero
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}

// Limited - a count of held resources that never exceeds a maximum
type Limited struct {
	count   uint64
	maximum uint64
}

// NewLimited - create a limit, zero maximum means unlimited
func NewLimited(maximum uint64) *Limited {
	return &Limited{
		maximum: maximum,
	}
}

// Acquire - take one unit, false if the maximum is already held
func (l *Limited) Acquire() bool {
	for {
		n := atomic.LoadUint64(&l.count)
		if 0 != l.maximum && n >= l.maximum {
			return false
		}
		if atomic.CompareAndSwapUint64(&l.count, n, n+1) {
			return true
		}
	}
}

// Release - return one unit taken by Acquire
func (l *Limited) Release() {
	atomic.AddUint64(&l.count, ^uint64(0))
}

// Uint64 - units currently held
func (l *Limited) Uint64() uint64 {
	return atomic.LoadUint64(&l.count)
}

// Maximum - the configured limit
func (l *Limited) Maximum() uint64 {
	return l.maximum
}
