// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package throttle

import (
	"time"

	"github.com/bitmark-inc/hashledger/fault"
)

// Operation - category of ledger write
type Operation string

// operation types
const (
	Verification      Operation = "verification"
	BatchVerification Operation = "batch-verification"
	Deletion          Operation = "deletion"
	Archiving         Operation = "archiving"
	Restoration       Operation = "restoration"
)

// Operations - every operation type
func Operations() []Operation {
	return []Operation{Verification, BatchVerification, Deletion, Archiving, Restoration}
}

// ParseOperation - operation from its name
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations() {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fault.ErrInvalidOperationType
}

// defaults
const (
	DefaultCeiling       = 30
	DefaultWindow        = 60 * time.Second
	DefaultMaxConcurrent = 5
	DefaultMaxBatchSize  = 50
	DefaultQueueTimeout  = 5 * time.Minute
)

// Settings - limits applied by a throttler
type Settings struct {
	Ceiling       int                // operations started per window
	Window        time.Duration      // length of the rolling window
	MaxConcurrent int                // operations running at once
	MaxBatchSize  int                // items per batch operation
	QueueTimeout  time.Duration      // longest wait in the queue
	Locks         map[Operation]bool // engaged operation locks
}

// DefaultSettings - the limits used when none are configured
func DefaultSettings() Settings {
	return Settings{
		Ceiling:       DefaultCeiling,
		Window:        DefaultWindow,
		MaxConcurrent: DefaultMaxConcurrent,
		MaxBatchSize:  DefaultMaxBatchSize,
		QueueTimeout:  DefaultQueueTimeout,
	}
}

// replace unset values by defaults and validate the locks
func (s Settings) normalise() (Settings, error) {
	d := DefaultSettings()
	if s.Ceiling <= 0 {
		s.Ceiling = d.Ceiling
	}
	if s.Window <= 0 {
		s.Window = d.Window
	}
	if s.MaxConcurrent <= 0 {
		s.MaxConcurrent = d.MaxConcurrent
	}
	if s.MaxBatchSize <= 0 {
		s.MaxBatchSize = d.MaxBatchSize
	}
	if s.QueueTimeout <= 0 {
		s.QueueTimeout = d.QueueTimeout
	}
	locks := make(map[Operation]bool)
	for op, locked := range s.Locks {
		if _, err := ParseOperation(string(op)); nil != err {
			return s, err
		}
		if locked {
			locks[op] = true
		}
	}
	s.Locks = locks
	return s, nil
}
