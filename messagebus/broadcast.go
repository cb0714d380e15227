// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
	"sync/atomic"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its item
type Message struct {
	Command string
	Item    interface{}
}

// BroadcastQueue - fan out messages to all current listeners
type BroadcastQueue struct {
	dropped uint64 // first for 64 bit alignment
	sync.RWMutex
	listeners map[<-chan Message]chan Message
}

// NewBroadcast - create an empty broadcast queue
func NewBroadcast() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: make(map[<-chan Message]chan Message),
	}
}

// Send - send a message to all listeners without blocking
func (queue *BroadcastQueue) Send(command string, item interface{}) {
	if nil == queue {
		return
	}

	m := Message{
		Command: command,
		Item:    item,
	}

	queue.RLock()
	defer queue.RUnlock()

	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			atomic.AddUint64(&queue.dropped, 1)
		}
	}
}

// Dropped - number of messages lost by slow listeners
func (queue *BroadcastQueue) Dropped() uint64 {
	return atomic.LoadUint64(&queue.dropped)
}

// Chan - a new listener channel
//
// size <= 0 selects the default buffer size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners[c] = c
	queue.Unlock()

	return c
}

// Release - stop listening and close the channel
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	if w, ok := queue.listeners[c]; ok {
		delete(queue.listeners, c)
		close(w)
	}
}
