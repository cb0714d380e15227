// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a broadcast queue for ledger events
//
// every listener receives its own copy of each message sent after it
// started listening, a listener that falls behind loses messages
// rather than blocking the sender
package messagebus
