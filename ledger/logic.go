// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/storage"
)

// Logic - a versioned implementation a facade can dispatch to
type Logic interface {
	Name() string
	Version() string
	Address() account.Address
	Layout() Layout

	// true if the method never writes
	IsReadOnly(method string) bool

	// execute a call against the facade state in env
	Invoke(env *Environment, call *Call) (interface{}, error)
}

// Environment - everything a logic module may touch during one call
type Environment struct {
	Caller   account.Address
	Now      time.Time
	Trx      storage.Transaction
	State    *State
	Registry *Registry

	events []Event
}

// Emit - append an event to the facade log
//
// the event is only kept if the call succeeds
func (env *Environment) Emit(name string, payload interface{}) error {
	e, err := env.State.AppendEvent(env.Trx, name, env.Now, payload)
	if nil != err {
		return err
	}
	env.events = append(env.events, e)
	return nil
}

// Events - the events emitted so far
func (env *Environment) Events() []Event {
	return env.events
}

// RequireOwner - fail unless the caller is the owner
func (env *Environment) RequireOwner() error {
	if env.Caller.IsZero() || env.State.Owner(env.Trx) != env.Caller {
		return fault.ErrNotOwner
	}
	return nil
}

// RequireAdmin - fail unless the caller is the owner or an admin
func (env *Environment) RequireAdmin() error {
	if env.Caller.IsZero() {
		return fault.ErrNotAdmin
	}
	if env.State.Owner(env.Trx) == env.Caller || env.State.IsAdmin(env.Trx, env.Caller) {
		return nil
	}
	return fault.ErrNotAdmin
}
