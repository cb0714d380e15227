// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package throttle - admission control for ledger writes
//
// Every write passes through a Throttler which bounds both the number
// of operations started in a rolling window and the number running at
// once.  Operations that cannot start are queued, priority operations
// at the front, and fail with a *fault.QueueTimeoutError if no slot
// frees up in time.  Each operation type can be locked to reject new
// work of that type immediately.
//
// The queue is drained by a background process that sleeps until a
// slot is released, work is queued or the oldest window entry expires.
package throttle
