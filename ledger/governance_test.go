// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/fixtures"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/ledger"
)

func (l *testLedger) governance(t *testing.T) *ledger.Governance {
	var g ledger.Governance
	l.query(t, ledger.NewCall(ledger.MethodGetGovernance, nil), &g)
	return &g
}

func TestAdmins(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	admin := fixtures.Admin.Address()
	isAdmin := ledger.AddressCall(ledger.MethodIsAdmin, admin)

	assert.True(t, l.flag(t, ledger.AddressCall(ledger.MethodIsAdmin, fixtures.Owner.Address())), "owner is admin")
	assert.False(t, l.flag(t, isAdmin), "not yet admin")

	_, err := l.submit(fixtures.Admin, ledger.UpdateRecordHash(keyspace.Text, "t", "r", digest.NewDigestString("x")))
	assert.True(t, fault.IsErrAuthorisation(err), "non admin write")

	_, err = l.submit(fixtures.Stranger, ledger.AddressCall(ledger.MethodAddAdmin, admin))
	assert.Equal(t, fault.ErrNotOwner, err, "stranger add admin")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodAddAdmin, account.ZeroAddress))
	assert.Equal(t, fault.ErrZeroAddress, err, "zero admin")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodAddAdmin, admin))
	assert.Nil(t, err, "add admin")
	assert.True(t, l.flag(t, isAdmin), "is admin")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodAddAdmin, admin))
	assert.Equal(t, fault.ErrAdminAlreadyExists, err, "duplicate admin")

	_, err = l.submit(fixtures.Admin, ledger.UpdateRecordHash(keyspace.Text, "t", "r", digest.NewDigestString("x")))
	assert.Nil(t, err, "admin write")

	_, err = l.submit(fixtures.Admin, ledger.AddressCall(ledger.MethodAddAdmin, fixtures.Stranger.Address()))
	assert.Equal(t, fault.ErrNotOwner, err, "admins cannot add admins")

	g := l.governance(t)
	assert.Equal(t, []account.Address{admin}, g.Admins, "admin list")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodRemoveAdmin, admin))
	assert.Nil(t, err, "remove admin")
	assert.False(t, l.flag(t, isAdmin), "removed")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodRemoveAdmin, admin))
	assert.Equal(t, fault.ErrAdminNotFound, err, "remove twice")
}

func TestOwnershipTransferWaitsForDelay(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	newOwner := fixtures.NewOwner.Address()
	complete := ledger.NewCall(ledger.MethodCompleteOwnershipTransfer, nil)

	_, err := l.submit(fixtures.Owner, complete)
	assert.Equal(t, fault.ErrNoPendingOwnershipTransfer, err, "nothing pending")

	_, err = l.submit(fixtures.Stranger, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, newOwner))
	assert.Equal(t, fault.ErrNotOwner, err, "stranger initiate")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, account.ZeroAddress))
	assert.Equal(t, fault.ErrZeroAddress, err, "zero new owner")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, fixtures.Owner.Address()))
	assert.Equal(t, fault.ErrSameOwner, err, "same owner")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, newOwner))
	assert.Nil(t, err, "initiate")

	g := l.governance(t)
	assert.Equal(t, newOwner, g.PendingOwner, "pending owner")
	assert.Equal(t, uint64(l.clock.Now().Unix()+testDelay), g.OwnershipTransferTime, "transfer time")

	_, err = l.submit(fixtures.NewOwner, complete)
	assert.Equal(t, fault.ErrOwnershipTransferNotReady, err, "complete before delay")
	assert.True(t, fault.IsErrState(err), "early completion is a state error")

	l.clock.Advance(testDelay * time.Second)

	_, err = l.submit(fixtures.Stranger, complete)
	assert.Equal(t, fault.ErrNotPendingOwner, err, "stranger complete")

	_, err = l.submit(fixtures.NewOwner, complete)
	assert.Nil(t, err, "complete after delay")

	g = l.governance(t)
	assert.Equal(t, newOwner, g.Owner, "owner changed")
	assert.True(t, g.PendingOwner.IsZero(), "pending cleared")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodAddAdmin, fixtures.Admin.Address()))
	assert.Equal(t, fault.ErrNotOwner, err, "previous owner lost control")
}

func TestCancelOwnershipTransfer(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	cancel := ledger.NewCall(ledger.MethodCancelOwnershipTransfer, nil)

	_, err := l.submit(fixtures.Owner, cancel)
	assert.Equal(t, fault.ErrNoPendingOwnershipTransfer, err, "cancel with nothing pending")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, fixtures.NewOwner.Address()))
	assert.Nil(t, err, "initiate")

	_, err = l.submit(fixtures.NewOwner, cancel)
	assert.Equal(t, fault.ErrNotOwner, err, "pending owner cannot cancel")

	_, err = l.submit(fixtures.Owner, cancel)
	assert.Nil(t, err, "cancel")

	l.clock.Advance(2 * testDelay * time.Second)
	_, err = l.submit(fixtures.NewOwner, ledger.NewCall(ledger.MethodCompleteOwnershipTransfer, nil))
	assert.Equal(t, fault.ErrNoPendingOwnershipTransfer, err, "complete after cancel")
	assert.Equal(t, fixtures.Owner.Address(), l.governance(t).Owner, "owner unchanged")
}

func TestSetOwnershipTransferDelay(t *testing.T) {
	l := setupTestLedger(t)
	defer l.teardown()

	_, err := l.submit(fixtures.Stranger, ledger.SetOwnershipTransferDelay(10))
	assert.Equal(t, fault.ErrNotOwner, err, "stranger")

	_, err = l.submit(fixtures.Owner, ledger.SetOwnershipTransferDelay(ledger.MaximumTransferDelay+1))
	assert.Equal(t, fault.ErrInvalidDelay, err, "too long")

	_, err = l.submit(fixtures.Owner, ledger.SetOwnershipTransferDelay(0))
	assert.Nil(t, err, "zero delay")
	assert.Equal(t, uint64(0), l.governance(t).OwnershipTransferDelay, "delay stored")

	_, err = l.submit(fixtures.Owner, ledger.AddressCall(ledger.MethodInitiateOwnershipTransfer, fixtures.NewOwner.Address()))
	assert.Nil(t, err, "initiate")
	_, err = l.submit(fixtures.Owner, ledger.NewCall(ledger.MethodCompleteOwnershipTransfer, nil))
	assert.Nil(t, err, "owner completes immediately with zero delay")
	assert.Equal(t, fixtures.NewOwner.Address(), l.governance(t).Owner, "owner changed")
}
