// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter
	assert.True(t, c.IsZero(), "zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "after increments")

	assert.Equal(t, uint64(4), c.Decrement(), "decrement")
	assert.Equal(t, uint64(14), c.Add(10), "add")

	c.Add(^uint64(13))
	assert.True(t, c.IsZero(), "back to zero")

	// twos complement -1
	c.Decrement()
	assert.Equal(t, ^uint64(0), c.Uint64(), "underflow")
}

func TestCounterConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(10000), c.Uint64(), "total")
}

func TestLimited(t *testing.T) {
	l := counter.NewLimited(2)
	assert.True(t, l.Acquire(), "first")
	assert.True(t, l.Acquire(), "second")
	assert.False(t, l.Acquire(), "over the limit")
	assert.Equal(t, uint64(2), l.Uint64(), "held")

	l.Release()
	assert.True(t, l.Acquire(), "after release")
	assert.Equal(t, uint64(2), l.Maximum(), "maximum")

	unlimited := counter.NewLimited(0)
	for i := 0; i < 100; i += 1 {
		assert.True(t, unlimited.Acquire(), "unlimited %d", i)
	}
}
