// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
)

// event names
const (
	EventRecordHashUpdated             = "RecordHashUpdated"
	EventRecordArchived                = "RecordArchived"
	EventRecordRestored                = "RecordRestored"
	EventRecordHashDeleted             = "RecordHashDeleted"
	EventBatchProcessed                = "BatchProcessed"
	EventAdminAdded                    = "AdminAdded"
	EventAdminRemoved                  = "AdminRemoved"
	EventOwnershipTransferInitiated    = "OwnershipTransferInitiated"
	EventOwnershipTransferCancelled    = "OwnershipTransferCancelled"
	EventOwnershipTransferred          = "OwnershipTransferred"
	EventOwnershipTransferDelayChanged = "OwnershipTransferDelayChanged"
	EventUpgraded                      = "Upgraded"
	EventFacadeDeployed                = "FacadeDeployed"
)

// Event - one entry of a facade's event log
type Event struct {
	Sequence  uint64          `json:"sequence"`
	Facade    account.Address `json:"facade"`
	Name      string          `json:"name"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Decode - unpack the event data into one of the payload types below
func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// RecordHashUpdatedData - payload of RecordHashUpdated
type RecordHashUpdatedData struct {
	Encoding  string        `json:"encoding"`
	TableId   string        `json:"tableId"`
	RecordId  string        `json:"recordId"`
	Hash      digest.Digest `json:"hash"`
	Revision  uint64        `json:"revision"`
	Timestamp time.Time     `json:"timestamp"`
}

// RecordChangedData - payload of RecordArchived, RecordRestored and RecordHashDeleted
type RecordChangedData struct {
	Encoding  string          `json:"encoding"`
	TableId   string          `json:"tableId"`
	RecordId  string          `json:"recordId"`
	By        account.Address `json:"by"`
	Timestamp time.Time       `json:"timestamp"`
}

// BatchProcessedData - payload of BatchProcessed
type BatchProcessedData struct {
	Encoding  string        `json:"encoding"`
	BatchId   digest.Digest `json:"batchId"`
	Count     int           `json:"count"`
	Timestamp time.Time     `json:"timestamp"`
}

// AdminData - payload of AdminAdded and AdminRemoved
type AdminData struct {
	Admin account.Address `json:"admin"`
}

// OwnershipData - payload of the ownership transfer events
type OwnershipData struct {
	PreviousOwner account.Address `json:"previousOwner"`
	NewOwner      account.Address `json:"newOwner"`
	EffectiveTime time.Time       `json:"effectiveTime,omitempty"`
}

// DelayData - payload of OwnershipTransferDelayChanged
type DelayData struct {
	PreviousDelay uint64 `json:"previousDelay"`
	NewDelay      uint64 `json:"newDelay"`
}

// UpgradedData - payload of Upgraded
type UpgradedData struct {
	PreviousLogic account.Address `json:"previousLogic"`
	NewLogic      account.Address `json:"newLogic"`
	Name          string          `json:"name"`
	Version       string          `json:"version"`
}

// FacadeDeployedData - payload of FacadeDeployed
type FacadeDeployedData struct {
	Facade account.Address `json:"facade"`
	Logic  account.Address `json:"logic"`
	Owner  account.Address `json:"owner"`
	Delay  uint64          `json:"delay"`
}
