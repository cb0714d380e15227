// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submission - bridge between documents and the ledger
//
// a document is canonicalised and hashed, the hash is written under
// (tableId, document id) through the throttler and on success the
// verification status is stamped back onto the document and the
// document persisted
//
// with no ledger configured the service runs in mock mode: every
// operation returns a result with Success false and MockMode true and
// a nil error
package submission

//go:generate mockgen -destination=mocks/ledger.go -package=mocks github.com/bitmark-inc/hashledger/submission Ledger
//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/hashledger/document Store
