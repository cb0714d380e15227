// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/messagebus"
	"github.com/bitmark-inc/hashledger/storage"
)

// Clock - source of the ledger time
type Clock func() time.Time

// Facade - stable address that dispatches to the active logic module
type Facade struct {
	sync.RWMutex

	address  account.Address
	database *storage.Database
	registry *Registry
	state    *State
	bus      *messagebus.BroadcastQueue
	clock    Clock
	log      *logger.L
}

// NewFacade - attach to the state of a facade address
//
// bus may be nil if events need not be broadcast
func NewFacade(address account.Address, database *storage.Database, registry *Registry, bus *messagebus.BroadcastQueue) *Facade {
	return &Facade{
		address:  address,
		database: database,
		registry: registry,
		state:    NewState(database, address),
		bus:      bus,
		clock:    time.Now,
		log:      logger.New("facade"),
	}
}

// SetClock - replace the time source
func (f *Facade) SetClock(clock Clock) {
	f.Lock()
	f.clock = clock
	f.Unlock()
}

func (f *Facade) now() time.Time {
	f.RLock()
	defer f.RUnlock()
	return f.clock().UTC()
}

// Address - the facade address
func (f *Facade) Address() account.Address {
	return f.address
}

// State - the facade storage
func (f *Facade) State() *State {
	return f.state
}

// Submit - verify and execute a signed transaction
//
// the nonce must be greater than any previously accepted from the
// same caller, it is only consumed if the call succeeds
func (f *Facade) Submit(tx *SignedTransaction) (*Receipt, error) {
	if nil == tx {
		return nil, fault.ErrMissingParameters
	}
	if tx.Facade != f.address {
		return nil, fault.ErrWrongFacade
	}
	caller, err := tx.Caller()
	if nil != err {
		return nil, err
	}

	result, err := f.run(caller, tx.Call, false, func(trx storage.Transaction) error {
		if tx.Nonce <= f.state.LastNonce(trx, caller) {
			return fault.ErrInvalidNonce
		}
		f.state.SetNonce(trx, caller, tx.Nonce)
		return nil
	})
	if nil != err {
		return nil, err
	}

	receipt := &Receipt{
		TxId:   tx.TxId(),
		Facade: f.address,
		Caller: caller,
		Nonce:  tx.Nonce,
		Result: result,
	}
	f.log.Infof("%s: tx: %s  caller: %s", tx.Call.Method, receipt.TxId, caller)
	return receipt, nil
}

// Query - execute a read only call
func (f *Facade) Query(call *Call) (*Result, error) {
	if nil == call {
		return nil, fault.ErrMissingParameters
	}
	return f.run(account.ZeroAddress, call, true, nil)
}

// Events - committed events from sequence start onwards
func (f *Facade) Events(start uint64, count int) ([]Event, error) {
	return f.state.Events(start, count)
}

// Implementation - the active logic module
func (f *Facade) Implementation() (Logic, error) {
	trx, err := f.database.Begin()
	if nil != err {
		return nil, err
	}
	defer trx.Abort()
	return f.logic(trx)
}

func (f *Facade) logic(trx storage.Transaction) (Logic, error) {
	a := f.state.Logic(trx)
	if a.IsZero() {
		return nil, fault.ErrNotInitialised
	}
	logic, ok := f.registry.Lookup(a)
	if !ok {
		return nil, fault.ErrNotInitialised
	}
	return logic, nil
}

// forward a call to the active logic inside one storage transaction
//
// any error aborts the transaction so no partial write survives
func (f *Facade) run(caller account.Address, call *Call, readOnly bool, before func(storage.Transaction) error) (*Result, error) {
	trx, err := f.database.Begin()
	if nil != err {
		return nil, err
	}
	// read after Begin so timestamps follow commit order
	now := f.now()

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	logic, err := f.logic(trx)
	if nil != err {
		return nil, err
	}

	if readOnly && !logic.IsReadOnly(call.Method) {
		return nil, fault.ErrNotReadOnlyMethod
	}

	if nil != before {
		if err := before(trx); nil != err {
			return nil, err
		}
	}

	env := &Environment{
		Caller:   caller,
		Now:      now,
		Trx:      trx,
		State:    f.state,
		Registry: f.registry,
	}

	value, err := logic.Invoke(env, call)
	if nil != err {
		return nil, err
	}

	buffer, err := json.Marshal(value)
	if nil != err {
		return nil, err
	}

	result := &Result{
		Method: call.Method,
		Value:  buffer,
		Events: env.Events(),
	}

	if readOnly {
		// nothing to keep
		return result, nil
	}

	committed = true
	if err := trx.Commit(); nil != err {
		return nil, err
	}

	for i := range result.Events {
		f.bus.Send(result.Events[i].Name, &result.Events[i])
	}
	return result, nil
}
