// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"
	"sync"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/ledger"
)

// Ledger - the client side of the ledger call surface
type Ledger interface {
	// sign and submit a state changing call
	Submit(ctx context.Context, signer *account.Signer, call *ledger.Call) (*ledger.Receipt, error)

	// run a read only call
	Query(ctx context.Context, call *ledger.Call) (*ledger.Result, error)
}

// LocalLedger - a Ledger backed by an in-process facade
type LocalLedger struct {
	sync.Mutex
	facade *ledger.Facade
}

// NewLocalLedger - wrap a facade
func NewLocalLedger(facade *ledger.Facade) *LocalLedger {
	return &LocalLedger{
		facade: facade,
	}
}

// Submit - sign and execute a call
//
// signing and submission are serialised so nonces from one signer
// arrive in the order they were issued
func (l *LocalLedger) Submit(ctx context.Context, signer *account.Signer, call *ledger.Call) (*ledger.Receipt, error) {
	if nil == signer || nil == call {
		return nil, fault.ErrMissingParameters
	}
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	tx := ledger.NewSignedTransaction(signer, l.facade.Address(), call)
	return l.facade.Submit(tx)
}

// Query - execute a read only call
func (l *LocalLedger) Query(ctx context.Context, call *ledger.Call) (*ledger.Result, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	return l.facade.Query(call)
}
