// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
)

// Layout - ordered names of the state fields a logic module relies on
//
// fields may only ever be appended; a module whose layout reorders or
// drops a stored field would misread all existing state
type Layout []string

// DefaultLayout - the fields used by Module
var DefaultLayout = Layout{
	"owner",
	"admins",
	"textHashes",
	"textMetadata",
	"fixedHashes",
	"fixedMetadata",
	"processedBatches",
	"pendingOwner",
	"ownershipTransferTime",
	"ownershipTransferDelay",
	"logic",
	"eventSequence",
}

// IsCompatibleWith - true if every field of the previous layout
// appears at the same position in this one
func (layout Layout) IsCompatibleWith(previous Layout) bool {
	if len(previous) > len(layout) {
		return false
	}
	for i, field := range previous {
		if layout[i] != field {
			return false
		}
	}
	return true
}

// Extend - a new layout with fields appended
func (layout Layout) Extend(fields ...string) Layout {
	l := make(Layout, 0, len(layout)+len(fields))
	l = append(l, layout...)
	return append(l, fields...)
}

func (layout Layout) pack() []byte {
	buffer, _ := json.Marshal([]string(layout))
	return buffer
}

func unpackLayout(buffer []byte) (Layout, error) {
	if 0 == len(buffer) {
		return nil, nil
	}
	var layout Layout
	err := json.Unmarshal(buffer, &layout)
	return layout, err
}
