// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/bitmark-inc/hashledger/fault"
)

var (
	ErrAuthOne     = fault.AuthorisationError("auth one")
	ErrAvailOne    = fault.AvailabilityError("availability one")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrStateOne    = fault.StateError("state one")
	ErrStateTwo    = fault.StateError("state two")
	ErrThrottleOne = fault.ThrottleError("throttle one")
	ErrTimeout     = &fault.QueueTimeoutError{Operation: "verification", Waited: time.Second}
	ErrLedgerOne   = fault.NewLedgerError(fault.ErrRecordArchived)
	ErrWrapped     = fmt.Errorf("wrapped: %w", fault.ErrNotAdmin)
)

// test that the error classes are distinct
func TestClasses(t *testing.T) {
	errorList := []struct {
		err          error
		auth         bool
		availability bool
		invalid      bool
		state        bool
		throttle     bool
		ledger       bool
	}{
		{ErrAuthOne, true, false, false, false, false, false},
		{ErrAvailOne, false, true, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false},
		{ErrStateOne, false, false, false, true, false, false},
		{ErrStateTwo, false, false, false, true, false, false},
		{ErrThrottleOne, false, false, false, false, true, false},
		{ErrTimeout, false, false, false, false, true, false},
		{ErrLedgerOne, false, false, false, true, false, true},
		{ErrWrapped, true, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAuthorisation(err) != e.auth {
			t.Errorf("%d: expected 'authorisation' == %v for err = %v", i, e.auth, err)
		}
		if fault.IsErrAvailability(err) != e.availability {
			t.Errorf("%d: expected 'availability' == %v for err = %v", i, e.availability, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrState(err) != e.state {
			t.Errorf("%d: expected 'state' == %v for err = %v", i, e.state, err)
		}
		if fault.IsErrThrottle(err) != e.throttle {
			t.Errorf("%d: expected 'throttle' == %v for err = %v", i, e.throttle, err)
		}
		if fault.IsErrLedger(err) != e.ledger {
			t.Errorf("%d: expected 'ledger' == %v for err = %v", i, e.ledger, err)
		}
	}
}

func TestLedgerErrorIsNotWrappedTwice(t *testing.T) {
	if nil != fault.NewLedgerError(nil) {
		t.Fatal("nil error was wrapped")
	}
	once := fault.NewLedgerError(ErrStateOne)
	twice := fault.NewLedgerError(once)
	if once != twice {
		t.Errorf("ledger error wrapped twice: %v", twice)
	}
}

// test that messages map back to their typed errors
func TestLookup(t *testing.T) {
	if fault.ErrRecordArchived != fault.Lookup(fault.ErrRecordArchived.Error()) {
		t.Errorf("lookup of a known message did not return the same error")
	}
	if !fault.IsErrState(fault.Lookup("record is archived")) {
		t.Errorf("lookup lost the error class")
	}

	e := fault.Lookup("something else")
	if fault.GenericError("something else") != e {
		t.Errorf("unknown message: %v", e)
	}
}
