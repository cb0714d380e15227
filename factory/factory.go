// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package factory - deploy new facades wired to a logic module
package factory

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/messagebus"
	"github.com/bitmark-inc/hashledger/storage"
)

// packed deployment: deploy time ++ logic ++ owner
const packedDeploymentLength = 8 + 2*account.AddressLength

// Deployment - the factory record of one facade
type Deployment struct {
	Facade   account.Address `json:"facade"`
	Logic    account.Address `json:"logic"`
	Owner    account.Address `json:"owner"`
	Deployed time.Time       `json:"deployed"`
}

// Factory - creates and reopens facades in one database
type Factory struct {
	database *storage.Database
	registry *ledger.Registry
	bus      *messagebus.BroadcastQueue
	clock    ledger.Clock
	log      *logger.L
}

// New - create a factory
func New(database *storage.Database, registry *ledger.Registry, bus *messagebus.BroadcastQueue) *Factory {
	return &Factory{
		database: database,
		registry: registry,
		bus:      bus,
		clock:    time.Now,
		log:      logger.New("factory"),
	}
}

// SetClock - replace the time source, also used by facades it returns
func (f *Factory) SetClock(clock ledger.Clock) {
	f.clock = clock
}

// Deploy - create a facade wired to a registered logic module
func (f *Factory) Deploy(logicAddress account.Address, owner account.Address, delay uint64) (*ledger.Facade, *ledger.Event, error) {
	if logicAddress.IsZero() {
		return nil, nil, fault.ErrZeroLogicAddress
	}
	if owner.IsZero() {
		return nil, nil, fault.ErrZeroAddress
	}
	if delay > ledger.MaximumTransferDelay {
		return nil, nil, fault.ErrInvalidDelay
	}
	logic, ok := f.registry.Lookup(logicAddress)
	if !ok {
		return nil, nil, fault.ErrLogicNotRegistered
	}

	salt, err := uuid.NewRandom()
	if nil != err {
		return nil, nil, err
	}
	address := account.NewContractAddress("facade", logicAddress[:], owner[:], salt[:])
	now := f.clock().UTC()

	trx, err := f.database.Begin()
	if nil != err {
		return nil, nil, err
	}

	facades := f.database.Pool.Facades
	if trx.Has(facades, address[:]) {
		trx.Abort()
		return nil, nil, fault.ErrAlreadyInitialised
	}

	state := ledger.NewState(f.database, address)
	err = state.Initialise(trx, owner, delay, logic)
	if nil != err {
		trx.Abort()
		return nil, nil, err
	}

	d := &Deployment{
		Facade:   address,
		Logic:    logicAddress,
		Owner:    owner,
		Deployed: now,
	}
	trx.Put(facades, address[:], d.pack())

	event, err := state.AppendEvent(trx, ledger.EventFacadeDeployed, now, &ledger.FacadeDeployedData{
		Facade: address,
		Logic:  logicAddress,
		Owner:  owner,
		Delay:  delay,
	})
	if nil != err {
		trx.Abort()
		return nil, nil, err
	}

	if err := trx.Commit(); nil != err {
		return nil, nil, err
	}

	f.bus.Send(event.Name, &event)
	f.log.Infof("deployed facade: %s  logic: %s  owner: %s", address, logicAddress, owner)

	return f.open(address), &event, nil
}

// Get - reopen a deployed facade
func (f *Factory) Get(address account.Address) (*ledger.Facade, error) {
	if !f.database.Pool.Facades.Has(address[:]) {
		return nil, fault.ErrFacadeNotFound
	}
	return f.open(address), nil
}

// List - every deployed facade
func (f *Factory) List() ([]Deployment, error) {
	deployments := make([]Deployment, 0, 16)
	err := f.database.Pool.Facades.NewFetchCursor().Map(func(key []byte, value []byte) error {
		d, err := unpackDeployment(key, value)
		if nil != err {
			return err
		}
		deployments = append(deployments, *d)
		return nil
	})
	return deployments, err
}

func (f *Factory) open(address account.Address) *ledger.Facade {
	facade := ledger.NewFacade(address, f.database, f.registry, f.bus)
	facade.SetClock(f.clock)
	return facade
}

func (d *Deployment) pack() []byte {
	buffer := make([]byte, 8, packedDeploymentLength)
	binary.BigEndian.PutUint64(buffer, uint64(d.Deployed.Unix()))
	buffer = append(buffer, d.Logic[:]...)
	return append(buffer, d.Owner[:]...)
}

func unpackDeployment(key []byte, value []byte) (*Deployment, error) {
	if packedDeploymentLength != len(value) {
		return nil, fault.ErrInvalidKeyLength
	}
	facade, err := account.AddressFromBytes(key)
	if nil != err {
		return nil, err
	}
	d := &Deployment{
		Facade:   facade,
		Deployed: time.Unix(int64(binary.BigEndian.Uint64(value[:8])), 0).UTC(),
	}
	copy(d.Logic[:], value[8:8+account.AddressLength])
	copy(d.Owner[:], value[8+account.AddressLength:])
	return d, nil
}
