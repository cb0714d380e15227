// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
)

// a record addressed by one call
type recordRef struct {
	encoding string
	tableId  string
	recordId string
	key      digest.Digest
}

func (m *Module) resolve(encodingName string, tableId string, recordId string) (*recordRef, error) {
	e, err := m.encoding(encodingName)
	if nil != err {
		return nil, err
	}
	key, err := keyspace.Key(e, tableId, recordId)
	if nil != err {
		return nil, err
	}
	return &recordRef{
		encoding: e.Name(),
		tableId:  tableId,
		recordId: recordId,
		key:      key,
	}, nil
}

// for the view methods an empty identifier, or one too long for the
// key space, simply names no record
func (m *Module) resolveView(call *Call) (*recordRef, *RecordArguments, error) {
	var args RecordArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, nil, err
	}
	ref, err := m.resolve(args.Encoding, args.TableId, args.RecordId)
	switch err {
	case nil:
		return ref, &args, nil
	case fault.ErrEmptyIdentifier, fault.ErrIdentifierTooLong:
		return nil, &args, nil
	default:
		return nil, nil, err
	}
}

// write a hash, shared by the single and batch paths
//
// returns the new metadata, or nil if the record is archived and
// skipArchived is set
func writeRecord(env *Environment, ref *recordRef, hash digest.Digest, skipArchived bool) (*Metadata, error) {
	meta, exists, err := env.State.Metadata(env.Trx, ref.encoding, ref.key)
	if nil != err {
		return nil, err
	}

	if exists && meta.IsArchived {
		if skipArchived {
			return nil, nil
		}
		return nil, fault.ErrRecordArchived
	}

	if exists {
		meta.UpdateCount += 1
		meta.Revision += 1
	} else {
		meta.UpdateCount = 1
		meta.Revision = 1
	}
	meta.Timestamp = env.Now
	meta.UpdatedBy = env.Caller
	meta.IsArchived = false

	err = env.State.PutRecord(env.Trx, ref.encoding, ref.key, hash, meta)
	if nil != err {
		return nil, err
	}
	return meta, nil
}

func (m *Module) updateRecordHash(env *Environment, call *Call) (interface{}, error) {
	var args RecordArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, err
	}
	ref, err := m.resolve(args.Encoding, args.TableId, args.RecordId)
	if nil != err {
		return nil, err
	}
	if args.Hash.IsZero() {
		return nil, fault.ErrInvalidDigest
	}
	if err := env.RequireAdmin(); nil != err {
		return nil, err
	}

	meta, err := writeRecord(env, ref, args.Hash, false)
	if nil != err {
		return nil, err
	}

	err = env.Emit(EventRecordHashUpdated, &RecordHashUpdatedData{
		Encoding:  ref.encoding,
		TableId:   ref.tableId,
		RecordId:  ref.recordId,
		Hash:      args.Hash,
		Revision:  meta.Revision,
		Timestamp: env.Now,
	})
	if nil != err {
		return nil, err
	}
	return meta, nil
}

// common part of archive, restore and delete
func (m *Module) changeRecord(env *Environment, call *Call) (*recordRef, *Metadata, error) {
	var args RecordArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, nil, err
	}
	ref, err := m.resolve(args.Encoding, args.TableId, args.RecordId)
	if nil != err {
		return nil, nil, err
	}
	if err := env.RequireAdmin(); nil != err {
		return nil, nil, err
	}
	meta, exists, err := env.State.Metadata(env.Trx, ref.encoding, ref.key)
	if nil != err {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, fault.ErrRecordNotFound
	}
	return ref, meta, nil
}

func (m *Module) emitRecordChanged(env *Environment, name string, ref *recordRef) error {
	return env.Emit(name, &RecordChangedData{
		Encoding:  ref.encoding,
		TableId:   ref.tableId,
		RecordId:  ref.recordId,
		By:        env.Caller,
		Timestamp: env.Now,
	})
}

func (m *Module) archiveRecord(env *Environment, call *Call) (interface{}, error) {
	ref, meta, err := m.changeRecord(env, call)
	if nil != err {
		return nil, err
	}
	if meta.IsArchived {
		return nil, fault.ErrRecordArchived
	}

	meta.IsArchived = true
	meta.Timestamp = env.Now
	meta.UpdatedBy = env.Caller
	if err := env.State.PutMetadata(env.Trx, ref.encoding, ref.key, meta); nil != err {
		return nil, err
	}
	if err := m.emitRecordChanged(env, EventRecordArchived, ref); nil != err {
		return nil, err
	}
	return meta, nil
}

func (m *Module) restoreRecord(env *Environment, call *Call) (interface{}, error) {
	ref, meta, err := m.changeRecord(env, call)
	if nil != err {
		return nil, err
	}
	if !meta.IsArchived {
		return nil, fault.ErrRecordNotArchived
	}

	meta.IsArchived = false
	meta.Timestamp = env.Now
	meta.UpdatedBy = env.Caller
	if err := env.State.PutMetadata(env.Trx, ref.encoding, ref.key, meta); nil != err {
		return nil, err
	}
	if err := m.emitRecordChanged(env, EventRecordRestored, ref); nil != err {
		return nil, err
	}
	return meta, nil
}

// erases the revision history as well as the hash
func (m *Module) deleteRecordHash(env *Environment, call *Call) (interface{}, error) {
	ref, _, err := m.changeRecord(env, call)
	if nil != err {
		return nil, err
	}
	if err := env.State.DeleteRecord(env.Trx, ref.encoding, ref.key); nil != err {
		return nil, err
	}
	if err := m.emitRecordChanged(env, EventRecordHashDeleted, ref); nil != err {
		return nil, err
	}
	return true, nil
}

func (m *Module) storedHash(env *Environment, ref *recordRef) (digest.Digest, error) {
	if nil == ref {
		return digest.Zero, nil
	}
	return env.State.Hash(env.Trx, ref.encoding, ref.key)
}

func (m *Module) getRecordHash(env *Environment, call *Call) (interface{}, error) {
	ref, _, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	return m.storedHash(env, ref)
}

func (m *Module) getRecordMetadata(env *Environment, call *Call) (interface{}, error) {
	ref, _, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	if nil == ref {
		return &Metadata{}, nil
	}
	meta, _, err := env.State.Metadata(env.Trx, ref.encoding, ref.key)
	return meta, err
}

func (m *Module) recordExists(env *Environment, call *Call) (interface{}, error) {
	ref, _, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	if nil == ref {
		return false, nil
	}
	_, exists, err := env.State.Metadata(env.Trx, ref.encoding, ref.key)
	return exists, err
}

func (m *Module) isRecordArchived(env *Environment, call *Call) (interface{}, error) {
	ref, _, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	if nil == ref {
		return false, nil
	}
	meta, _, err := env.State.Metadata(env.Trx, ref.encoding, ref.key)
	if nil != err {
		return nil, err
	}
	return meta.IsArchived, nil
}

// a zero candidate matches a record that was never written
func (m *Module) verifyRecordHash(env *Environment, call *Call) (interface{}, error) {
	ref, args, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	stored, err := m.storedHash(env, ref)
	if nil != err {
		return nil, err
	}
	return stored == args.Hash, nil
}

func (m *Module) verifyRecordData(env *Environment, call *Call) (interface{}, error) {
	ref, args, err := m.resolveView(call)
	if nil != err {
		return nil, err
	}
	stored, err := m.storedHash(env, ref)
	if nil != err {
		return nil, err
	}
	return stored == digest.NewDigest(args.Data), nil
}
