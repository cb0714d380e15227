// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
)

// names of the built-in module
const (
	ModuleName    = "record-hash-ledger"
	ModuleVersion = "1.0.0"
)

// Module - record, batch and governance logic over a set of key encodings
type Module struct {
	name      string
	version   string
	address   account.Address
	layout    Layout
	encodings map[string]keyspace.Encoding
	log       *logger.L
}

type handler struct {
	readOnly bool
	run      func(m *Module, env *Environment, call *Call) (interface{}, error)
}

var handlers = map[string]handler{
	MethodUpdateRecordHash:          {false, (*Module).updateRecordHash},
	MethodArchiveRecord:             {false, (*Module).archiveRecord},
	MethodRestoreRecord:             {false, (*Module).restoreRecord},
	MethodDeleteRecordHash:          {false, (*Module).deleteRecordHash},
	MethodGetRecordHash:             {true, (*Module).getRecordHash},
	MethodGetRecordMetadata:         {true, (*Module).getRecordMetadata},
	MethodRecordExists:              {true, (*Module).recordExists},
	MethodIsRecordArchived:          {true, (*Module).isRecordArchived},
	MethodVerifyRecordHash:          {true, (*Module).verifyRecordHash},
	MethodVerifyRecordData:          {true, (*Module).verifyRecordData},
	MethodUpdateBatchRecordHashes:   {false, (*Module).updateBatchRecordHashes},
	MethodIsBatchProcessed:          {true, (*Module).isBatchProcessed},
	MethodAddAdmin:                  {false, (*Module).addAdmin},
	MethodRemoveAdmin:               {false, (*Module).removeAdmin},
	MethodIsAdmin:                   {true, (*Module).isAdmin},
	MethodInitiateOwnershipTransfer: {false, (*Module).initiateOwnershipTransfer},
	MethodCancelOwnershipTransfer:   {false, (*Module).cancelOwnershipTransfer},
	MethodCompleteOwnershipTransfer: {false, (*Module).completeOwnershipTransfer},
	MethodSetOwnershipTransferDelay: {false, (*Module).setOwnershipTransferDelay},
	MethodGetGovernance:             {true, (*Module).getGovernance},
	MethodUpgradeTo:                 {false, (*Module).upgradeTo},
	MethodGetImplementation:         {true, (*Module).getImplementation},
}

// NewModule - create a logic module
//
// with no encodings given both the text and fixed key spaces are served
func NewModule(name string, version string, layout Layout, encodings ...keyspace.Encoding) *Module {
	if 0 == len(encodings) {
		encodings = keyspace.All()
	}
	m := &Module{
		name:      name,
		version:   version,
		address:   account.NewContractAddress("logic", []byte(name), []byte(version)),
		layout:    layout,
		encodings: make(map[string]keyspace.Encoding),
		log:       logger.New("ledger"),
	}
	for _, e := range encodings {
		m.encodings[e.Name()] = e
	}
	return m
}

// NewDefaultModule - the built-in module with the default layout
func NewDefaultModule() *Module {
	return NewModule(ModuleName, ModuleVersion, DefaultLayout)
}

// Name - module name
func (m *Module) Name() string { return m.name }

// Version - module version
func (m *Module) Version() string { return m.version }

// Address - address derived from name and version
func (m *Module) Address() account.Address { return m.address }

// Layout - state fields used by this module
func (m *Module) Layout() Layout { return m.layout }

// IsReadOnly - true for the view methods
func (m *Module) IsReadOnly(method string) bool {
	h, ok := handlers[method]
	return ok && h.readOnly
}

// Invoke - run one call
func (m *Module) Invoke(env *Environment, call *Call) (interface{}, error) {
	h, ok := handlers[call.Method]
	if !ok {
		return nil, fault.ErrInvalidMethod
	}
	value, err := h.run(m, env, call)
	if nil != err {
		m.log.Debugf("%s: caller: %s  error: %s", call.Method, env.Caller, err)
		return nil, err
	}
	m.log.Tracef("%s: caller: %s  ok", call.Method, env.Caller)
	return value, nil
}

func (m *Module) encoding(name string) (keyspace.Encoding, error) {
	if "" == name {
		name = keyspace.Text
	}
	e, ok := m.encodings[name]
	if !ok {
		return nil, fault.ErrInvalidEncoding
	}
	return e, nil
}
