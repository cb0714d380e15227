// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/messagebus"
)

// writes every committed ledger event to the log
type eventLogger struct {
	log   *logger.L
	queue <-chan messagebus.Message
}

func newEventLogger(bus *messagebus.BroadcastQueue) *eventLogger {
	return &eventLogger{
		log:   logger.New("events"),
		queue: bus.Chan(0),
	}
}

func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	e.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m, ok := <-e.queue:
			if !ok {
				break loop
			}
			event, ok := m.Item.(*ledger.Event)
			if !ok {
				e.log.Warnf("unexpected item for: %s", m.Command)
				continue loop
			}
			e.log.Infof("facade: %s  event[%d]: %s  data: %s", event.Facade, event.Sequence, event.Name, event.Data)
		}
	}
	e.log.Info("stopped")
}
