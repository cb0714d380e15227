// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
	"time"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type AvailabilityError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StateError GenericError
type ThrottleError GenericError

// common errors - keep in alphabetic order
var (
	ErrAdminAlreadyExists           = StateError("admin already exists")
	ErrAdminNotFound                = StateError("admin not found")
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrBatchAlreadyProcessed        = StateError("batch already processed")
	ErrBatchLengthMismatch          = InvalidError("batch array lengths mismatch")
	ErrCannotDecodeAddress          = InvalidError("cannot decode address")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrChecksumMismatch             = InvalidError("checksum mismatch")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDatabaseIsReadOnly           = ProcessError("database is read only")
	ErrDeployDisabled               = AuthorisationError("deployment is disabled on this node")
	ErrDocumentNotFound             = NotFoundError("document not found")
	ErrEmptyBatch                   = InvalidError("empty batch")
	ErrEmptyIdentifier              = InvalidError("empty identifier")
	ErrFacadeNotFound               = NotFoundError("facade not found")
	ErrFingerprintMismatch          = AuthorisationError("certificate fingerprint mismatch")
	ErrIdentifierTooLong            = InvalidError("identifier too long")
	ErrIncompatibleLayout           = StateError("incompatible storage layout")
	ErrInvalidAddress               = InvalidError("invalid address")
	ErrInvalidBatchId               = InvalidError("invalid batch id")
	ErrInvalidConfiguration         = InvalidError("configuration must return a table")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidCursor                = InvalidError("invalid cursor")
	ErrInvalidDelay                 = InvalidError("invalid delay")
	ErrInvalidDigest                = InvalidError("invalid digest")
	ErrInvalidDirectory             = InvalidError("invalid directory")
	ErrInvalidDocumentId            = InvalidError("invalid document id")
	ErrInvalidEncoding              = InvalidError("invalid key encoding")
	ErrInvalidIpAddress             = InvalidError("invalid IP address")
	ErrInvalidKeyLength             = InvalidError("invalid key length")
	ErrInvalidLoggerChannel         = ProcessError("invalid logger channel")
	ErrInvalidMethod                = InvalidError("invalid method")
	ErrInvalidNonce                 = StateError("nonce has already been used")
	ErrInvalidOperationType         = InvalidError("invalid operation type")
	ErrInvalidSignature             = AuthorisationError("invalid signature")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrLedgerNotConfigured          = AvailabilityError("ledger is not configured")
	ErrLedgerUnreachable            = AvailabilityError("ledger is unreachable")
	ErrLogicAlreadyActive           = StateError("logic module is already active")
	ErrLogicNotRegistered           = NotFoundError("logic module is not registered")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNoPendingOwnershipTransfer   = StateError("no pending ownership transfer")
	ErrNotAdmin                     = AuthorisationError("caller is not owner or admin")
	ErrNotInitialised               = StateError("not initialised")
	ErrNotOwner                     = AuthorisationError("caller is not owner")
	ErrNotPlainFileName             = InvalidError("file name must not contain a directory")
	ErrNotPendingOwner              = AuthorisationError("caller is not owner or pending owner")
	ErrNotReadOnlyMethod            = InvalidError("method is not read only")
	ErrOperationLocked              = ThrottleError("operation type is locked")
	ErrOwnershipTransferNotReady    = StateError("ownership transfer delay has not elapsed")
	ErrRateLimiting                 = ThrottleError("rate limiting")
	ErrRecordArchived               = StateError("record is archived")
	ErrRecordInOtherKeySpace        = StateError("record is tracked in another key space")
	ErrRecordNotArchived            = StateError("record is not archived")
	ErrRecordNotFound               = StateError("record does not exist")
	ErrSameOwner                    = InvalidError("new owner is the current owner")
	ErrThrottlerStopped             = ThrottleError("throttler is stopped")
	ErrTransactionAlreadyInUse      = ProcessError("transaction already in use")
	ErrWrongFacade                  = InvalidError("transaction is for a different facade")
	ErrZeroAddress                  = InvalidError("zero address")
	ErrZeroBatchId                  = InvalidError("zero batch id")
	ErrZeroLogicAddress             = InvalidError("zero logic address")
)

// every error above, for Lookup
var all = []error{
	ErrAdminAlreadyExists,
	ErrAdminNotFound,
	ErrAlreadyInitialised,
	ErrBatchAlreadyProcessed,
	ErrBatchLengthMismatch,
	ErrCannotDecodeAddress,
	ErrCertificateFileAlreadyExists,
	ErrChecksumMismatch,
	ErrDatabaseIsNotSet,
	ErrDatabaseIsReadOnly,
	ErrDeployDisabled,
	ErrDocumentNotFound,
	ErrEmptyBatch,
	ErrEmptyIdentifier,
	ErrFacadeNotFound,
	ErrFingerprintMismatch,
	ErrIdentifierTooLong,
	ErrIncompatibleLayout,
	ErrInvalidAddress,
	ErrInvalidBatchId,
	ErrInvalidConfiguration,
	ErrInvalidCount,
	ErrInvalidCursor,
	ErrInvalidDelay,
	ErrInvalidDigest,
	ErrInvalidDirectory,
	ErrInvalidDocumentId,
	ErrInvalidEncoding,
	ErrInvalidIpAddress,
	ErrInvalidKeyLength,
	ErrInvalidLoggerChannel,
	ErrInvalidMethod,
	ErrInvalidNonce,
	ErrInvalidOperationType,
	ErrInvalidSignature,
	ErrKeyFileAlreadyExists,
	ErrLedgerNotConfigured,
	ErrLedgerUnreachable,
	ErrLogicAlreadyActive,
	ErrLogicNotRegistered,
	ErrMissingParameters,
	ErrNoPendingOwnershipTransfer,
	ErrNotAdmin,
	ErrNotInitialised,
	ErrNotOwner,
	ErrNotPlainFileName,
	ErrNotPendingOwner,
	ErrNotReadOnlyMethod,
	ErrOperationLocked,
	ErrOwnershipTransferNotReady,
	ErrRateLimiting,
	ErrRecordArchived,
	ErrRecordInOtherKeySpace,
	ErrRecordNotArchived,
	ErrRecordNotFound,
	ErrSameOwner,
	ErrThrottlerStopped,
	ErrTransactionAlreadyInUse,
	ErrWrongFacade,
	ErrZeroAddress,
	ErrZeroBatchId,
	ErrZeroLogicAddress,
}

// Lookup - recover a typed error from its message
//
// errors crossing the RPC boundary arrive as plain text; unknown
// messages are returned unchanged as a GenericError
func Lookup(message string) error {
	for _, e := range all {
		if e.Error() == message {
			return e
		}
	}
	return GenericError(message)
}

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e AvailabilityError) Error() string  { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e StateError) Error() string         { return string(e) }
func (e ThrottleError) Error() string      { return string(e) }

// QueueTimeoutError - an operation was dropped from the throttle
// queue before a slot became free
type QueueTimeoutError struct {
	Operation string
	Waited    time.Duration
	Queued    int
}

func (e *QueueTimeoutError) Error() string {
	return fmt.Sprintf("operation: %s timed out in queue after: %s (queue length: %d)", e.Operation, e.Waited, e.Queued)
}

// LedgerError - the write reached the ledger and was rejected
type LedgerError struct {
	Err error
}

// NewLedgerError - wrap a ledger rejection, nil stays nil
func NewLedgerError(err error) error {
	if nil == err {
		return nil
	}
	if IsErrLedger(err) {
		return err
	}
	return &LedgerError{Err: err}
}

func (e *LedgerError) Error() string { return "ledger rejected: " + e.Err.Error() }
func (e *LedgerError) Unwrap() error { return e.Err }

// determine the class of an error
func IsErrAuthorisation(e error) bool { var t AuthorisationError; return errors.As(e, &t) }
func IsErrAvailability(e error) bool  { var t AvailabilityError; return errors.As(e, &t) }
func IsErrExists(e error) bool        { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool       { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool      { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool       { var t ProcessError; return errors.As(e, &t) }
func IsErrState(e error) bool         { var t StateError; return errors.As(e, &t) }
func IsErrLedger(e error) bool        { var t *LedgerError; return errors.As(e, &t) }
func IsErrQueueTimeout(e error) bool  { var t *QueueTimeoutError; return errors.As(e, &t) }

// IsErrThrottle - locked, rate limited or timed out while queued
func IsErrThrottle(e error) bool {
	var t ThrottleError
	return errors.As(e, &t) || IsErrQueueTimeout(e)
}
