// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger identities
//
// an address is the last 20 bytes of SHA3-256 of an ed25519 public key
// (for signers) or of a descriptor (for logic modules and facades)
//
// text form:
//
//   base58( 0x48 ++ address ++ SHA3-256(0x48 ++ address)[:4] )
package account
