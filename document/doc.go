// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package document - the contract a verifiable document implements
//
// A document supplies a canonical text form of its meaningful fields
// and carries a Verification structure that is written back after its
// hash has been recorded in the ledger.
package document
