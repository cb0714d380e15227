// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the record hash table and its governance
//
// A Facade is the stable identity callers address.  It owns a scope in
// every storage pool and forwards each Call, unmodified, to the Logic
// module its governance state currently points at.  Logic modules are
// looked up in a Registry so that the pointer can be moved to a newer
// module by upgradeTo without touching the stored records.
//
// Module is the record logic: one implementation parameterised by
// the key encodings it accepts (see package keyspace).
package ledger
