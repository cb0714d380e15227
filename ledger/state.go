// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/keyspace"
	"github.com/bitmark-inc/hashledger/storage"
)

// keys in the governance pool
var (
	ownerKey         = []byte("owner")
	pendingOwnerKey  = []byte("pendingOwner")
	transferTimeKey  = []byte("ownershipTransferTime")
	transferDelayKey = []byte("ownershipTransferDelay")
	logicKey         = []byte("logic")
	layoutKey        = []byte("layout")
	eventSequenceKey = []byte("eventSequence")
)

// State - the storage of one facade
//
// every pool is scoped by the facade address, all reads take the
// open transaction so that they observe its pending writes
type State struct {
	facade     account.Address
	governance *storage.PoolHandle
	admins     *storage.PoolHandle
	batches    *storage.PoolHandle
	events     *storage.PoolHandle
	nonces     *storage.PoolHandle
	hashes     map[string]*storage.PoolHandle
	metadata   map[string]*storage.PoolHandle
}

// NewState - the state of a facade inside a database
func NewState(database *storage.Database, facade account.Address) *State {
	scope := facade[:]
	pool := database.Pool
	return &State{
		facade:     facade,
		governance: pool.Governance.Scoped(scope),
		admins:     pool.Admins.Scoped(scope),
		batches:    pool.Batches.Scoped(scope),
		events:     pool.Events.Scoped(scope),
		nonces:     pool.Nonces.Scoped(scope),
		hashes: map[string]*storage.PoolHandle{
			keyspace.Text:  pool.TextHashes.Scoped(scope),
			keyspace.Fixed: pool.FixedHashes.Scoped(scope),
		},
		metadata: map[string]*storage.PoolHandle{
			keyspace.Text:  pool.TextMetadata.Scoped(scope),
			keyspace.Fixed: pool.FixedMetadata.Scoped(scope),
		},
	}
}

// Facade - the address this state belongs to
func (s *State) Facade() account.Address {
	return s.facade
}

// Initialise - first write of governance for a new facade
func (s *State) Initialise(trx storage.Transaction, owner account.Address, delay uint64, logic Logic) error {
	if owner.IsZero() {
		return fault.ErrZeroAddress
	}
	if nil == logic || logic.Address().IsZero() {
		return fault.ErrZeroLogicAddress
	}
	if trx.Has(s.governance, ownerKey) {
		return fault.ErrAlreadyInitialised
	}
	trx.Put(s.governance, ownerKey, owner[:])
	trx.PutN(s.governance, transferDelayKey, delay)
	s.SetLogic(trx, logic.Address(), logic.Layout())
	return nil
}

// IsInitialised - true once an owner has been written
func (s *State) IsInitialised(trx storage.Transaction) bool {
	return trx.Has(s.governance, ownerKey)
}

func (s *State) getAddress(trx storage.Transaction, key []byte) account.Address {
	a, err := account.AddressFromBytes(trx.Get(s.governance, key))
	if nil != err {
		return account.ZeroAddress
	}
	return a
}

func (s *State) putAddress(trx storage.Transaction, key []byte, a account.Address) {
	if a.IsZero() {
		trx.Delete(s.governance, key)
		return
	}
	trx.Put(s.governance, key, a[:])
}

// Owner - current owner
func (s *State) Owner(trx storage.Transaction) account.Address {
	return s.getAddress(trx, ownerKey)
}

// SetOwner - replace the owner
func (s *State) SetOwner(trx storage.Transaction, owner account.Address) {
	s.putAddress(trx, ownerKey, owner)
}

// PendingOwner - zero if no transfer is in progress
func (s *State) PendingOwner(trx storage.Transaction) account.Address {
	return s.getAddress(trx, pendingOwnerKey)
}

// SetPendingTransfer - record a pending transfer, a zero owner clears it
func (s *State) SetPendingTransfer(trx storage.Transaction, pending account.Address, effective time.Time) {
	s.putAddress(trx, pendingOwnerKey, pending)
	if pending.IsZero() {
		trx.Delete(s.governance, transferTimeKey)
		return
	}
	trx.PutN(s.governance, transferTimeKey, uint64(effective.Unix()))
}

// TransferTime - time at which the pending transfer may complete
func (s *State) TransferTime(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(s.governance, transferTimeKey)
	return n
}

// TransferDelay - seconds between initiating and completing a transfer
func (s *State) TransferDelay(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(s.governance, transferDelayKey)
	return n
}

// SetTransferDelay - change the delay for subsequent transfers
func (s *State) SetTransferDelay(trx storage.Transaction, seconds uint64) {
	trx.PutN(s.governance, transferDelayKey, seconds)
}

// Logic - the active logic module address
func (s *State) Logic(trx storage.Transaction) account.Address {
	return s.getAddress(trx, logicKey)
}

// Layout - the layout of the active logic module
func (s *State) Layout(trx storage.Transaction) (Layout, error) {
	return unpackLayout(trx.Get(s.governance, layoutKey))
}

// SetLogic - point the facade at a logic module
func (s *State) SetLogic(trx storage.Transaction, logic account.Address, layout Layout) {
	s.putAddress(trx, logicKey, logic)
	trx.Put(s.governance, layoutKey, layout.pack())
}

// IsAdmin - true if the address is in the admin set
func (s *State) IsAdmin(trx storage.Transaction, a account.Address) bool {
	return trx.Has(s.admins, a[:])
}

// AddAdmin - insert into the admin set
func (s *State) AddAdmin(trx storage.Transaction, a account.Address, now time.Time) {
	trx.PutN(s.admins, a[:], uint64(now.Unix()))
}

// RemoveAdmin - delete from the admin set
func (s *State) RemoveAdmin(trx storage.Transaction, a account.Address) {
	trx.Delete(s.admins, a[:])
}

// Admins - the committed admin set
func (s *State) Admins() ([]account.Address, error) {
	admins := make([]account.Address, 0, 8)
	err := s.admins.NewFetchCursor().Map(func(key []byte, value []byte) error {
		a, err := account.AddressFromBytes(key)
		if nil != err {
			return err
		}
		admins = append(admins, a)
		return nil
	})
	return admins, err
}

func (s *State) recordPools(encoding string) (*storage.PoolHandle, *storage.PoolHandle, error) {
	h, ok := s.hashes[encoding]
	if !ok {
		return nil, nil, fault.ErrInvalidEncoding
	}
	return h, s.metadata[encoding], nil
}

// Hash - stored hash of a record, zero if absent
func (s *State) Hash(trx storage.Transaction, encoding string, key digest.Digest) (digest.Digest, error) {
	h, _, err := s.recordPools(encoding)
	if nil != err {
		return digest.Zero, err
	}
	var d digest.Digest
	buffer := trx.Get(h, key[:])
	if nil == buffer {
		return digest.Zero, nil
	}
	err = digest.FromBytes(&d, buffer)
	return d, err
}

// Metadata - stored metadata of a record
//
// the second result is false if no record exists
func (s *State) Metadata(trx storage.Transaction, encoding string, key digest.Digest) (*Metadata, bool, error) {
	_, m, err := s.recordPools(encoding)
	if nil != err {
		return nil, false, err
	}
	buffer := trx.Get(m, key[:])
	if nil == buffer {
		return &Metadata{}, false, nil
	}
	meta, err := UnpackMetadata(buffer)
	if nil != err {
		return nil, false, err
	}
	return meta, true, nil
}

// PutRecord - write hash and metadata together
func (s *State) PutRecord(trx storage.Transaction, encoding string, key digest.Digest, hash digest.Digest, meta *Metadata) error {
	h, m, err := s.recordPools(encoding)
	if nil != err {
		return err
	}
	trx.Put(h, key[:], hash[:])
	trx.Put(m, key[:], meta.Pack())
	return nil
}

// PutMetadata - write only the metadata
func (s *State) PutMetadata(trx storage.Transaction, encoding string, key digest.Digest, meta *Metadata) error {
	_, m, err := s.recordPools(encoding)
	if nil != err {
		return err
	}
	trx.Put(m, key[:], meta.Pack())
	return nil
}

// DeleteRecord - erase hash and metadata
func (s *State) DeleteRecord(trx storage.Transaction, encoding string, key digest.Digest) error {
	h, m, err := s.recordPools(encoding)
	if nil != err {
		return err
	}
	trx.Delete(h, key[:])
	trx.Delete(m, key[:])
	return nil
}

// IsBatchProcessed - true if the batch id was already used
func (s *State) IsBatchProcessed(trx storage.Transaction, batchId digest.Digest) bool {
	return trx.Has(s.batches, batchId[:])
}

// MarkBatchProcessed - consume a batch id
func (s *State) MarkBatchProcessed(trx storage.Transaction, batchId digest.Digest, now time.Time) {
	trx.PutN(s.batches, batchId[:], uint64(now.Unix()))
}

// LastNonce - highest nonce accepted from an address
func (s *State) LastNonce(trx storage.Transaction, a account.Address) uint64 {
	n, _ := trx.GetN(s.nonces, a[:])
	return n
}

// SetNonce - record an accepted nonce
func (s *State) SetNonce(trx storage.Transaction, a account.Address, nonce uint64) {
	trx.PutN(s.nonces, a[:], nonce)
}

// AppendEvent - add an event to the log and return it
func (s *State) AppendEvent(trx storage.Transaction, name string, timestamp time.Time, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if nil != err {
		return Event{}, err
	}

	sequence, _ := trx.GetN(s.governance, eventSequenceKey)
	sequence += 1

	e := Event{
		Sequence:  sequence,
		Facade:    s.facade,
		Name:      name,
		Timestamp: timestamp.UTC(),
		Data:      data,
	}
	packed, err := json.Marshal(e)
	if nil != err {
		return Event{}, err
	}

	trx.Put(s.events, sequenceKey(sequence), packed)
	trx.PutN(s.governance, eventSequenceKey, sequence)
	return e, nil
}

// Events - committed events with sequence >= start
func (s *State) Events(start uint64, count int) ([]Event, error) {
	elements, err := s.events.NewFetchCursor().Seek(sequenceKey(start)).Fetch(count)
	if nil != err {
		return nil, err
	}
	events := make([]Event, 0, len(elements))
	for _, element := range elements {
		var e Event
		if err := json.Unmarshal(element.Value, &e); nil != err {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func sequenceKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}
