// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/messagebus"
	"github.com/bitmark-inc/hashledger/rpc"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and connection figures
type stats struct {
	log    *logger.L
	server *rpc.Server
	bus    *messagebus.BroadcastQueue
}

func (s *stats) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega)
		s.log.Infof("rpc connections: %d  dropped events: %d", s.server.Connections(), s.bus.Dropped())

		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}
	}
}
