// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.  Tables used
// by a facade are scoped by the facade address so that every facade
// owns a disjoint range of keys.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. facade       = facade address (20 bytes)
// 4. key          = record key as 32 byte SHA3-256(encode(tableId) ++ encode(recordId))
// 5. count        = big endian uint64 (8 bytes)
// 6. address      = 20 byte account address
//
// Governance:
//
//   G ++ facade ++ name        - owner, pending owner, transfer time, transfer delay,
//                                logic pointer, layout, event sequence
//   M ++ facade ++ address     - admin set
//                                data: count (time added)
//
// Records:
//
//   H ++ facade ++ key         - text encoded record hashes
//                                data: 32 byte digest
//   D ++ facade ++ key         - text encoded record metadata
//                                data: timestamp ++ updatedBy ++ updateCount ++ revision ++ archived
//   h ++ facade ++ key         - fixed width record hashes
//   d ++ facade ++ key         - fixed width record metadata
//
// Batches:
//
//   B ++ facade ++ batchId     - processed batch identifiers
//                                data: count (processing time)
//
// Events:
//
//   E ++ facade ++ count       - event log
//                                data: JSON event
//
// Nonces:
//
//   N ++ facade ++ address     - last accepted transaction nonce
//                                data: count
//
// Factory:
//
//   F ++ facade                - deployed facades
//                                data: count (deploy time) ++ logic ++ owner
//
// Testing:
//   Z ++ key                   - testing data
package storage
