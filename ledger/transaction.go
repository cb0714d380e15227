// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/fault"
)

// SignedTransaction - a call authorised by a signing identity
type SignedTransaction struct {
	Facade    account.Address `json:"facade"`
	PublicKey []byte          `json:"publicKey"`
	Nonce     uint64          `json:"nonce"`
	Call      *Call           `json:"call"`
	Signature []byte          `json:"signature"`
}

// NewSignedTransaction - build and sign a transaction
func NewSignedTransaction(signer *account.Signer, facade account.Address, call *Call) *SignedTransaction {
	tx := &SignedTransaction{
		Facade:    facade,
		PublicKey: signer.PublicKey(),
		Nonce:     signer.NextNonce(),
		Call:      call,
	}
	tx.Signature = signer.Sign(tx.Pack())
	return tx
}

// Pack - the signed bytes
//
//   facade ++ len ++ publicKey ++ nonce ++ len ++ method ++ len ++ arguments
func (tx *SignedTransaction) Pack() []byte {
	method := ""
	var arguments []byte
	if nil != tx.Call {
		method = tx.Call.Method
		arguments = tx.Call.Arguments
	}

	buffer := make([]byte, 0, account.AddressLength+len(tx.PublicKey)+len(method)+len(arguments)+32)
	buffer = append(buffer, tx.Facade[:]...)
	buffer = appendBytes(buffer, tx.PublicKey)
	buffer = binary.BigEndian.AppendUint64(buffer, tx.Nonce)
	buffer = appendBytes(buffer, []byte(method))
	buffer = appendBytes(buffer, arguments)
	return buffer
}

// TxId - transaction hash: SHA3-256 of the packed bytes and signature
func (tx *SignedTransaction) TxId() digest.Digest {
	packed := tx.Pack()
	return digest.NewDigest(appendBytes(packed, tx.Signature))
}

// Caller - verify the signature and derive the caller address
func (tx *SignedTransaction) Caller() (account.Address, error) {
	if nil == tx.Call || "" == tx.Call.Method {
		return account.ZeroAddress, fault.ErrMissingParameters
	}
	if err := account.CheckSignature(tx.PublicKey, tx.Pack(), tx.Signature); nil != err {
		return account.ZeroAddress, fault.ErrInvalidSignature
	}
	return account.FromPublicKey(tx.PublicKey)
}

func appendBytes(buffer []byte, data []byte) []byte {
	buffer = binary.AppendUvarint(buffer, uint64(len(data)))
	return append(buffer, data...)
}
