// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - serve the ledger call surface as JSON-RPC over TLS
//
// services:
//
//   Ledger.Submit   signed transaction -> receipt
//   Ledger.Query    read only call on a facade
//   Ledger.Deploy   new facade (if allowed by configuration)
//   Ledger.Events   event log of a facade
//   Ledger.Facades  deployed facades
//   Ledger.Modules  registered logic modules
//   Node.Info       node status
//
// the rpc/client package is the matching client
package rpc
