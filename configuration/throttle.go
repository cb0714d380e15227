// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"time"

	"github.com/bitmark-inc/hashledger/throttle"
)

// ThrottleConfiguration - the throttle section of a configuration file
//
// durations are in whole seconds, zero selects the default
type ThrottleConfiguration struct {
	Ceiling       int             `gluamapper:"ceiling" json:"ceiling"`
	Window        int             `gluamapper:"window" json:"window"`
	MaxConcurrent int             `gluamapper:"max_concurrent" json:"max_concurrent"`
	MaxBatchSize  int             `gluamapper:"max_batch_size" json:"max_batch_size"`
	QueueTimeout  int             `gluamapper:"queue_timeout" json:"queue_timeout"`
	Locks         map[string]bool `gluamapper:"locks" json:"locks"`
}

// Settings - convert to throttler settings, lock names are checked
func (c ThrottleConfiguration) Settings() (throttle.Settings, error) {
	s := throttle.Settings{
		Ceiling:       c.Ceiling,
		Window:        time.Duration(c.Window) * time.Second,
		MaxConcurrent: c.MaxConcurrent,
		MaxBatchSize:  c.MaxBatchSize,
		QueueTimeout:  time.Duration(c.QueueTimeout) * time.Second,
		Locks:         make(map[throttle.Operation]bool),
	}
	for name, locked := range c.Locks {
		op, err := throttle.ParseOperation(name)
		if nil != err {
			return s, err
		}
		s.Locks[op] = locked
	}
	return s, nil
}
