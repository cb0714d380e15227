// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/hashledger/fault"
)

// write many record hashes under a one time batch id
//
// archived records are skipped and reported by index; a single
// BatchProcessed event is emitted for the whole batch
func (m *Module) updateBatchRecordHashes(env *Environment, call *Call) (interface{}, error) {
	var args BatchArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, err
	}

	n := len(args.TableIds)
	if n != len(args.RecordIds) || n != len(args.Hashes) {
		return nil, fault.ErrBatchLengthMismatch
	}
	if 0 == n {
		return nil, fault.ErrEmptyBatch
	}
	if args.BatchId.IsZero() {
		return nil, fault.ErrZeroBatchId
	}

	// validate everything before any write
	refs := make([]*recordRef, n)
	for i := 0; i < n; i += 1 {
		ref, err := m.resolve(args.Encoding, args.TableIds[i], args.RecordIds[i])
		if nil != err {
			return nil, err
		}
		if args.Hashes[i].IsZero() {
			return nil, fault.ErrInvalidDigest
		}
		refs[i] = ref
	}

	if err := env.RequireAdmin(); nil != err {
		return nil, err
	}
	if env.State.IsBatchProcessed(env.Trx, args.BatchId) {
		return nil, fault.ErrBatchAlreadyProcessed
	}

	outcome := &BatchOutcome{
		BatchId: args.BatchId,
	}
	for i, ref := range refs {
		meta, err := writeRecord(env, ref, args.Hashes[i], true)
		if nil != err {
			return nil, err
		}
		if nil == meta {
			outcome.Skipped = append(outcome.Skipped, i)
			continue
		}
		outcome.Recorded += 1
	}

	env.State.MarkBatchProcessed(env.Trx, args.BatchId, env.Now)

	err := env.Emit(EventBatchProcessed, &BatchProcessedData{
		Encoding:  refs[0].encoding,
		BatchId:   args.BatchId,
		Count:     n,
		Timestamp: env.Now,
	})
	if nil != err {
		return nil, err
	}
	return outcome, nil
}

func (m *Module) isBatchProcessed(env *Environment, call *Call) (interface{}, error) {
	var args BatchArguments
	if err := decodeArguments(call, &args); nil != err {
		return nil, err
	}
	return env.State.IsBatchProcessed(env.Trx, args.BatchId), nil
}
