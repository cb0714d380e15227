// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
)

// MaximumTransferDelay - upper bound for setOwnershipTransferDelay
const MaximumTransferDelay = uint64(365 * 24 * 60 * 60)

func decodeAddress(call *Call) (*AddressArguments, error) {
	var args AddressArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, err
	}
	return &args, nil
}

func (m *Module) addAdmin(env *Environment, call *Call) (interface{}, error) {
	args, err := decodeAddress(call)
	if nil != err {
		return nil, err
	}
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	if args.Address.IsZero() {
		return nil, fault.ErrZeroAddress
	}
	if env.State.IsAdmin(env.Trx, args.Address) {
		return nil, fault.ErrAdminAlreadyExists
	}

	env.State.AddAdmin(env.Trx, args.Address, env.Now)
	if err := env.Emit(EventAdminAdded, &AdminData{Admin: args.Address}); nil != err {
		return nil, err
	}
	return true, nil
}

func (m *Module) removeAdmin(env *Environment, call *Call) (interface{}, error) {
	args, err := decodeAddress(call)
	if nil != err {
		return nil, err
	}
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	if args.Address.IsZero() {
		return nil, fault.ErrZeroAddress
	}
	if !env.State.IsAdmin(env.Trx, args.Address) {
		return nil, fault.ErrAdminNotFound
	}

	env.State.RemoveAdmin(env.Trx, args.Address)
	if err := env.Emit(EventAdminRemoved, &AdminData{Admin: args.Address}); nil != err {
		return nil, err
	}
	return true, nil
}

// the owner always counts as an admin
func (m *Module) isAdmin(env *Environment, call *Call) (interface{}, error) {
	args, err := decodeAddress(call)
	if nil != err {
		return nil, err
	}
	if args.Address.IsZero() {
		return false, nil
	}
	return env.State.Owner(env.Trx) == args.Address || env.State.IsAdmin(env.Trx, args.Address), nil
}

func (m *Module) initiateOwnershipTransfer(env *Environment, call *Call) (interface{}, error) {
	args, err := decodeAddress(call)
	if nil != err {
		return nil, err
	}
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	if args.Address.IsZero() {
		return nil, fault.ErrZeroAddress
	}
	owner := env.State.Owner(env.Trx)
	if owner == args.Address {
		return nil, fault.ErrSameOwner
	}

	delay := env.State.TransferDelay(env.Trx)
	effective := env.Now.Add(time.Duration(delay) * time.Second)
	env.State.SetPendingTransfer(env.Trx, args.Address, effective)

	err = env.Emit(EventOwnershipTransferInitiated, &OwnershipData{
		PreviousOwner: owner,
		NewOwner:      args.Address,
		EffectiveTime: effective.UTC(),
	})
	if nil != err {
		return nil, err
	}
	return uint64(effective.Unix()), nil
}

func (m *Module) cancelOwnershipTransfer(env *Environment, call *Call) (interface{}, error) {
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	pending := env.State.PendingOwner(env.Trx)
	if pending.IsZero() {
		return nil, fault.ErrNoPendingOwnershipTransfer
	}

	env.State.SetPendingTransfer(env.Trx, account.ZeroAddress, time.Time{})
	err := env.Emit(EventOwnershipTransferCancelled, &OwnershipData{
		PreviousOwner: env.State.Owner(env.Trx),
		NewOwner:      pending,
	})
	if nil != err {
		return nil, err
	}
	return true, nil
}

// callable by the owner or the pending owner once the delay has elapsed
func (m *Module) completeOwnershipTransfer(env *Environment, call *Call) (interface{}, error) {
	pending := env.State.PendingOwner(env.Trx)
	if pending.IsZero() {
		return nil, fault.ErrNoPendingOwnershipTransfer
	}
	owner := env.State.Owner(env.Trx)
	if env.Caller != owner && env.Caller != pending {
		return nil, fault.ErrNotPendingOwner
	}
	if uint64(env.Now.Unix()) < env.State.TransferTime(env.Trx) {
		return nil, fault.ErrOwnershipTransferNotReady
	}

	env.State.SetOwner(env.Trx, pending)
	env.State.SetPendingTransfer(env.Trx, account.ZeroAddress, time.Time{})

	// the new owner must not also linger as an ordinary admin
	if env.State.IsAdmin(env.Trx, pending) {
		env.State.RemoveAdmin(env.Trx, pending)
	}

	err := env.Emit(EventOwnershipTransferred, &OwnershipData{
		PreviousOwner: owner,
		NewOwner:      pending,
	})
	if nil != err {
		return nil, err
	}
	return pending, nil
}

func (m *Module) setOwnershipTransferDelay(env *Environment, call *Call) (interface{}, error) {
	var args DelayArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, err
	}
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	if args.Delay > MaximumTransferDelay {
		return nil, fault.ErrInvalidDelay
	}

	previous := env.State.TransferDelay(env.Trx)
	env.State.SetTransferDelay(env.Trx, args.Delay)
	err := env.Emit(EventOwnershipTransferDelayChanged, &DelayData{
		PreviousDelay: previous,
		NewDelay:      args.Delay,
	})
	if nil != err {
		return nil, err
	}
	return args.Delay, nil
}

func (m *Module) getGovernance(env *Environment, call *Call) (interface{}, error) {
	admins, err := env.State.Admins()
	if nil != err {
		return nil, err
	}
	layout, err := env.State.Layout(env.Trx)
	if nil != err {
		return nil, err
	}
	return &Governance{
		Owner:                  env.State.Owner(env.Trx),
		Admins:                 admins,
		PendingOwner:           env.State.PendingOwner(env.Trx),
		OwnershipTransferTime:  env.State.TransferTime(env.Trx),
		OwnershipTransferDelay: env.State.TransferDelay(env.Trx),
		Logic:                  env.State.Logic(env.Trx),
		Layout:                 layout,
	}, nil
}

// move the facade to another registered module
//
// the stored layout must be a prefix of the new module's layout
func (m *Module) upgradeTo(env *Environment, call *Call) (interface{}, error) {
	args, err := decodeAddress(call)
	if nil != err {
		return nil, err
	}
	if err := env.RequireOwner(); nil != err {
		return nil, err
	}
	if args.Address.IsZero() {
		return nil, fault.ErrZeroLogicAddress
	}
	current := env.State.Logic(env.Trx)
	if current == args.Address {
		return nil, fault.ErrLogicAlreadyActive
	}
	if nil == env.Registry {
		return nil, fault.ErrLogicNotRegistered
	}
	next, ok := env.Registry.Lookup(args.Address)
	if !ok {
		return nil, fault.ErrLogicNotRegistered
	}

	stored, err := env.State.Layout(env.Trx)
	if nil != err {
		return nil, err
	}
	if !next.Layout().IsCompatibleWith(stored) {
		return nil, fault.ErrIncompatibleLayout
	}

	env.State.SetLogic(env.Trx, next.Address(), next.Layout())
	err = env.Emit(EventUpgraded, &UpgradedData{
		PreviousLogic: current,
		NewLogic:      next.Address(),
		Name:          next.Name(),
		Version:       next.Version(),
	})
	if nil != err {
		return nil, err
	}
	return &Implementation{
		Address: next.Address(),
		Name:    next.Name(),
		Version: next.Version(),
		Layout:  next.Layout(),
	}, nil
}

func (m *Module) getImplementation(env *Environment, call *Call) (interface{}, error) {
	layout, err := env.State.Layout(env.Trx)
	if nil != err {
		return nil, err
	}
	return &Implementation{
		Address: m.address,
		Name:    m.name,
		Version: m.version,
		Layout:  layout,
	}, nil
}
