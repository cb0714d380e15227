// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// errors are split into classes so that a caller can decide what to
// do without knowing every individual error:
//
//   InvalidError       - request rejected before touching the ledger
//   AuthorisationError - caller is not the owner or an admin
//   StateError         - ledger state does not permit the operation
//   AvailabilityError  - ledger disabled or unreachable
//   ThrottleError      - operation locked or timed out in the queue (retry is safe)
//   LedgerError        - a submitted write was rejected (do not retry blindly)
package fault
