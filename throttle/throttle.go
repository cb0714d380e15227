// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/background"
	"github.com/bitmark-inc/hashledger/counter"
	"github.com/bitmark-inc/hashledger/fault"
)

// Throttler - rate limiter, concurrency bound and priority queue
type Throttler struct {
	mutex sync.Mutex

	settings  Settings
	window    []time.Time // start times of admitted operations, oldest first
	executing int
	queue     []*request
	stopped   bool

	wake    chan struct{}
	stop    chan struct{}
	process *background.T
	log     *logger.L

	completed counter.Counter
	failed    counter.Counter
	timedOut  counter.Counter
}

// one queued operation
type request struct {
	operation Operation
	priority  bool
	queuedAt  time.Time
	admitted  bool
	ready     chan struct{}
}

// Status - snapshot of the throttler state
type Status struct {
	QueueLength   int                `json:"queueLength"`
	Executing     int                `json:"executing"`
	WindowCount   int                `json:"windowCount"`
	Ceiling       int                `json:"ceiling"`
	MaxConcurrent int                `json:"maxConcurrent"`
	MaxBatchSize  int                `json:"maxBatchSize"`
	Locks         map[Operation]bool `json:"locks"`
	Completed     uint64             `json:"completed"`
	Failed        uint64             `json:"failed"`
	TimedOut      uint64             `json:"timedOut"`
}

// New - create a throttler, Start must be called before use
func New(settings Settings) (*Throttler, error) {
	s, err := settings.normalise()
	if nil != err {
		return nil, err
	}
	return &Throttler{
		settings: s,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		log:      logger.New("throttle"),
	}, nil
}

// Start - run the queue processor
func (t *Throttler) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if nil != t.process || t.stopped {
		return
	}
	t.process = background.Start(background.Processes{&processor{throttler: t}}, nil)
	t.log.Infof("started: ceiling: %d per %s  concurrent: %d", t.settings.Ceiling, t.settings.Window, t.settings.MaxConcurrent)
}

// Stop - reject all queued and future operations
//
// operations already executing are allowed to finish
func (t *Throttler) Stop() {
	t.mutex.Lock()
	if t.stopped {
		t.mutex.Unlock()
		return
	}
	t.stopped = true
	close(t.stop)
	process := t.process
	t.mutex.Unlock()

	process.Stop()
	t.log.Info("stopped")
}

// Execute - run fn once the operation is admitted
func (t *Throttler) Execute(ctx context.Context, operation Operation, fn func() error) error {
	return t.execute(ctx, operation, false, fn)
}

// ExecutePriority - run fn ahead of queued work, ignoring the rate ceiling
func (t *Throttler) ExecutePriority(ctx context.Context, operation Operation, fn func() error) error {
	return t.execute(ctx, operation, true, fn)
}

func (t *Throttler) execute(ctx context.Context, operation Operation, priority bool, fn func() error) error {
	if _, err := ParseOperation(string(operation)); nil != err {
		return err
	}

	now := time.Now()

	t.mutex.Lock()
	if t.stopped {
		t.mutex.Unlock()
		return fault.ErrThrottlerStopped
	}
	if t.settings.Locks[operation] {
		t.mutex.Unlock()
		t.log.Debugf("rejected locked operation: %s", operation)
		return fault.ErrOperationLocked
	}

	t.prune(now)
	if (priority || 0 == len(t.queue)) && t.canAdmit(priority) {
		t.admit(now)
		t.mutex.Unlock()
		return t.run(fn)
	}

	r := &request{
		operation: operation,
		priority:  priority,
		queuedAt:  now,
		ready:     make(chan struct{}),
	}
	if priority {
		t.queue = append([]*request{r}, t.queue...)
	} else {
		t.queue = append(t.queue, r)
	}
	timeout := t.settings.QueueTimeout
	t.log.Debugf("queued: %s  priority: %t  queue length: %d", operation, priority, len(t.queue))
	t.mutex.Unlock()

	t.signal()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var cause error
	select {
	case <-r.ready:
		return t.run(fn)
	case <-timer.C:
	case <-ctx.Done():
		cause = ctx.Err()
	case <-t.stop:
		cause = fault.ErrThrottlerStopped
	}

	t.mutex.Lock()
	if r.admitted {
		// admitted while the timeout fired, the slot is already counted
		t.mutex.Unlock()
		return t.run(fn)
	}
	t.remove(r)
	queued := len(t.queue)
	t.mutex.Unlock()

	if nil != cause {
		return cause
	}

	t.timedOut.Increment()
	waited := time.Since(r.queuedAt)
	t.log.Warnf("timed out: %s  waited: %s  queue length: %d", operation, waited, queued)
	return &fault.QueueTimeoutError{
		Operation: string(operation),
		Waited:    waited,
		Queued:    queued,
	}
}

// run an admitted operation and release its slot
func (t *Throttler) run(fn func() error) error {
	defer t.release()

	err := fn()
	if nil != err {
		t.failed.Increment()
		return err
	}
	t.completed.Increment()
	return nil
}

func (t *Throttler) release() {
	t.mutex.Lock()
	t.executing -= 1
	t.mutex.Unlock()
	t.signal()
}

// wake the processor without blocking
func (t *Throttler) signal() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// must hold the lock
func (t *Throttler) canAdmit(priority bool) bool {
	if t.executing >= t.settings.MaxConcurrent {
		return false
	}
	return priority || len(t.window) < t.settings.Ceiling
}

// must hold the lock
func (t *Throttler) admit(now time.Time) {
	t.window = append(t.window, now)
	t.executing += 1
}

// drop window entries older than the window length
//
// must hold the lock
func (t *Throttler) prune(now time.Time) {
	cutoff := now.Add(-t.settings.Window)
	n := 0
	for n < len(t.window) && !t.window[n].After(cutoff) {
		n += 1
	}
	if n > 0 {
		t.window = append(t.window[:0], t.window[n:]...)
	}
}

// must hold the lock
func (t *Throttler) remove(r *request) {
	for i, q := range t.queue {
		if q == r {
			t.queue = append(t.queue[:i], t.queue[i+1:]...)
			return
		}
	}
}

// admit queued requests while slots are free
//
// returns the time until the oldest window entry expires if the queue
// is blocked only by the rate ceiling, zero otherwise
func (t *Throttler) dispatch(now time.Time) time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.prune(now)
	for len(t.queue) > 0 {
		r := t.queue[0]
		if !t.canAdmit(r.priority) {
			break
		}
		t.queue = t.queue[1:]
		t.admit(now)
		r.admitted = true
		close(r.ready)
	}

	if 0 == len(t.queue) || t.executing >= t.settings.MaxConcurrent || 0 == len(t.window) {
		return 0
	}
	d := t.window[0].Add(t.settings.Window).Sub(now)
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

// Lock - reject new operations of a type
func (t *Throttler) Lock(operation Operation) error {
	if _, err := ParseOperation(string(operation)); nil != err {
		return err
	}
	t.mutex.Lock()
	t.settings.Locks[operation] = true
	t.mutex.Unlock()
	t.log.Warnf("locked: %s", operation)
	return nil
}

// Unlock - accept operations of a type again
func (t *Throttler) Unlock(operation Operation) error {
	if _, err := ParseOperation(string(operation)); nil != err {
		return err
	}
	t.mutex.Lock()
	delete(t.settings.Locks, operation)
	t.mutex.Unlock()
	t.log.Infof("unlocked: %s", operation)
	return nil
}

// IsLocked - true if the operation type is locked
func (t *Throttler) IsLocked(operation Operation) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.settings.Locks[operation]
}

// QueueLength - number of waiting operations
func (t *Throttler) QueueLength() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.queue)
}

// MaxBatchSize - largest number of items in one batch operation
func (t *Throttler) MaxBatchSize() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.settings.MaxBatchSize
}

// Reconfigure - replace the limits and locks
func (t *Throttler) Reconfigure(settings Settings) error {
	s, err := settings.normalise()
	if nil != err {
		return err
	}
	t.mutex.Lock()
	t.settings = s
	t.mutex.Unlock()
	t.signal()
	t.log.Infof("reconfigured: ceiling: %d per %s  concurrent: %d  batch: %d", s.Ceiling, s.Window, s.MaxConcurrent, s.MaxBatchSize)
	return nil
}

// Status - current counts and limits
func (t *Throttler) Status() Status {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.prune(time.Now())
	locks := make(map[Operation]bool, len(t.settings.Locks))
	for op, locked := range t.settings.Locks {
		locks[op] = locked
	}
	return Status{
		QueueLength:   len(t.queue),
		Executing:     t.executing,
		WindowCount:   len(t.window),
		Ceiling:       t.settings.Ceiling,
		MaxConcurrent: t.settings.MaxConcurrent,
		MaxBatchSize:  t.settings.MaxBatchSize,
		Locks:         locks,
		Completed:     t.completed.Uint64(),
		Failed:        t.failed.Uint64(),
		TimedOut:      t.timedOut.Uint64(),
	}
}
