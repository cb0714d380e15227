// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
)

// method names forming the external call surface
const (
	MethodUpdateRecordHash          = "updateRecordHash"
	MethodArchiveRecord             = "archiveRecord"
	MethodRestoreRecord             = "restoreRecord"
	MethodDeleteRecordHash          = "deleteRecordHash"
	MethodGetRecordHash             = "getRecordHash"
	MethodGetRecordMetadata         = "getRecordMetadata"
	MethodRecordExists              = "recordExists"
	MethodIsRecordArchived          = "isRecordArchived"
	MethodVerifyRecordHash          = "verifyRecordHash"
	MethodVerifyRecordData          = "verifyRecordData"
	MethodUpdateBatchRecordHashes   = "updateBatchRecordHashes"
	MethodIsBatchProcessed          = "isBatchProcessed"
	MethodAddAdmin                  = "addAdmin"
	MethodRemoveAdmin               = "removeAdmin"
	MethodIsAdmin                   = "isAdmin"
	MethodInitiateOwnershipTransfer = "initiateOwnershipTransfer"
	MethodCancelOwnershipTransfer   = "cancelOwnershipTransfer"
	MethodCompleteOwnershipTransfer = "completeOwnershipTransfer"
	MethodSetOwnershipTransferDelay = "setOwnershipTransferDelay"
	MethodGetGovernance             = "getGovernance"
	MethodUpgradeTo                 = "upgradeTo"
	MethodGetImplementation         = "getImplementation"
)

// Call - a method name and its JSON arguments
type Call struct {
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Result - the value returned by a call and the events it emitted
type Result struct {
	Method string          `json:"method"`
	Value  json.RawMessage `json:"value,omitempty"`
	Events []Event         `json:"events,omitempty"`
}

// Decode - unpack the returned value
func (r *Result) Decode(v interface{}) error {
	if nil == r || 0 == len(r.Value) {
		return fault.ErrMissingParameters
	}
	return json.Unmarshal(r.Value, v)
}

// Receipt - outcome of a signed transaction
type Receipt struct {
	TxId   digest.Digest   `json:"txId"`
	Facade account.Address `json:"facade"`
	Caller account.Address `json:"caller"`
	Nonce  uint64          `json:"nonce"`
	Result *Result         `json:"result"`
}

// RecordArguments - arguments of the single record methods
type RecordArguments struct {
	Encoding string        `json:"encoding"`
	TableId  string        `json:"tableId"`
	RecordId string        `json:"recordId"`
	Hash     digest.Digest `json:"hash,omitempty"`
	Data     []byte        `json:"data,omitempty"`
}

// BatchArguments - arguments of updateBatchRecordHashes and isBatchProcessed
type BatchArguments struct {
	Encoding  string          `json:"encoding"`
	BatchId   digest.Digest   `json:"batchId"`
	TableIds  []string        `json:"tableIds,omitempty"`
	RecordIds []string        `json:"recordIds,omitempty"`
	Hashes    []digest.Digest `json:"hashes,omitempty"`
}

// AddressArguments - arguments of the admin, ownership and upgrade methods
type AddressArguments struct {
	Address account.Address `json:"address"`
}

// DelayArguments - argument of setOwnershipTransferDelay, in seconds
type DelayArguments struct {
	Delay uint64 `json:"delay"`
}

// BatchOutcome - value returned by updateBatchRecordHashes
//
// Skipped holds the indices of entries not written because the
// record was archived
type BatchOutcome struct {
	BatchId  digest.Digest `json:"batchId"`
	Recorded int           `json:"recorded"`
	Skipped  []int         `json:"skipped,omitempty"`
}

// Governance - value returned by getGovernance
type Governance struct {
	Owner                  account.Address   `json:"owner"`
	Admins                 []account.Address `json:"admins"`
	PendingOwner           account.Address   `json:"pendingOwner"`
	OwnershipTransferTime  uint64            `json:"ownershipTransferTime"`
	OwnershipTransferDelay uint64            `json:"ownershipTransferDelay"`
	Logic                  account.Address   `json:"logic"`
	Layout                 Layout            `json:"layout"`
}

// Implementation - value returned by getImplementation
type Implementation struct {
	Address account.Address `json:"address"`
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Layout  Layout          `json:"layout"`
}

// NewCall - build a call from a method and an argument structure
func NewCall(method string, arguments interface{}) *Call {
	c := &Call{
		Method: method,
	}
	if nil != arguments {
		buffer, err := json.Marshal(arguments)
		logger.PanicIfError("ledger.NewCall", err)
		c.Arguments = buffer
	}
	return c
}

// UpdateRecordHash - call to store a record hash
func UpdateRecordHash(encoding string, tableId string, recordId string, hash digest.Digest) *Call {
	return NewCall(MethodUpdateRecordHash, &RecordArguments{
		Encoding: encoding,
		TableId:  tableId,
		RecordId: recordId,
		Hash:     hash,
	})
}

// RecordCall - call to one of the record methods needing only identifiers
func RecordCall(method string, encoding string, tableId string, recordId string) *Call {
	return NewCall(method, &RecordArguments{
		Encoding: encoding,
		TableId:  tableId,
		RecordId: recordId,
	})
}

// VerifyRecordHash - call to compare a candidate hash with the stored one
func VerifyRecordHash(encoding string, tableId string, recordId string, hash digest.Digest) *Call {
	return NewCall(MethodVerifyRecordHash, &RecordArguments{
		Encoding: encoding,
		TableId:  tableId,
		RecordId: recordId,
		Hash:     hash,
	})
}

// VerifyRecordData - call to compare the digest of data with the stored hash
func VerifyRecordData(encoding string, tableId string, recordId string, data []byte) *Call {
	return NewCall(MethodVerifyRecordData, &RecordArguments{
		Encoding: encoding,
		TableId:  tableId,
		RecordId: recordId,
		Data:     data,
	})
}

// UpdateBatchRecordHashes - call to store several record hashes under one batch id
func UpdateBatchRecordHashes(encoding string, batchId digest.Digest, tableIds []string, recordIds []string, hashes []digest.Digest) *Call {
	return NewCall(MethodUpdateBatchRecordHashes, &BatchArguments{
		Encoding:  encoding,
		BatchId:   batchId,
		TableIds:  tableIds,
		RecordIds: recordIds,
		Hashes:    hashes,
	})
}

// IsBatchProcessed - call to check a batch id
func IsBatchProcessed(batchId digest.Digest) *Call {
	return NewCall(MethodIsBatchProcessed, &BatchArguments{
		BatchId: batchId,
	})
}

// AddressCall - call to one of the methods taking a single address
func AddressCall(method string, address account.Address) *Call {
	return NewCall(method, &AddressArguments{
		Address: address,
	})
}

// SetOwnershipTransferDelay - call to change the transfer delay
func SetOwnershipTransferDelay(seconds uint64) *Call {
	return NewCall(MethodSetOwnershipTransferDelay, &DelayArguments{
		Delay: seconds,
	})
}

func decodeArguments(call *Call, v interface{}) error {
	if 0 == len(call.Arguments) {
		return fault.ErrMissingParameters
	}
	if err := json.Unmarshal(call.Arguments, v); nil != err {
		return fault.ErrMissingParameters
	}
	return nil
}
