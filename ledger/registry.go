// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
)

// Registry - logic modules available to facades, by address
type Registry struct {
	sync.RWMutex
	modules map[account.Address]Logic
}

// NewRegistry - create an empty registry
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[account.Address]Logic),
	}
}

// Register - make a logic module available
func (r *Registry) Register(logic Logic) error {
	a := logic.Address()
	if a.IsZero() {
		return fault.ErrZeroLogicAddress
	}

	r.Lock()
	defer r.Unlock()

	if _, ok := r.modules[a]; ok {
		return fault.ErrAlreadyInitialised
	}
	r.modules[a] = logic
	return nil
}

// Lookup - find a logic module
func (r *Registry) Lookup(a account.Address) (Logic, bool) {
	r.RLock()
	defer r.RUnlock()

	logic, ok := r.modules[a]
	return logic, ok
}

// List - all registered modules ordered by name then version
func (r *Registry) List() []Logic {
	r.RLock()
	defer r.RUnlock()

	l := make([]Logic, 0, len(r.modules))
	for _, logic := range r.modules {
		l = append(l, logic)
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].Name() == l[j].Name() {
			return l[i].Version() < l[j].Version()
		}
		return l[i].Name() < l[j].Name()
	})
	return l
}
