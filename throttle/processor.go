// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package throttle

import (
	"time"
)

// the background queue processor
type processor struct {
	throttler *Throttler
}

func (p *processor) Run(args interface{}, shutdown <-chan struct{}) {
	t := p.throttler
	t.log.Debug("processor starting")

	timer := time.NewTimer(time.Hour)
	timer.Stop()

loop:
	for {
		next := t.dispatch(time.Now())
		if next > 0 {
			timer.Reset(next)
		}

		select {
		case <-shutdown:
			break loop
		case <-t.wake:
		case <-timer.C:
		}

		// drain a pending expiry so Reset starts clean
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}

	t.log.Debug("processor stopped")
}
