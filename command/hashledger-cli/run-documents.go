// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/digest"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/submission"
)

type lifecycle func(*submission.Service, context.Context, document.Document, string, *account.Signer) (*submission.Result, error)

func runVerify(c *cli.Context) error {
	return runLifecycle(c, (*submission.Service).VerifyDocument)
}

func runArchive(c *cli.Context) error {
	return runLifecycle(c, (*submission.Service).ArchiveDocumentVerification)
}

func runRestore(c *cli.Context) error {
	return runLifecycle(c, (*submission.Service).RestoreDocumentVerification)
}

func runDelete(c *cli.Context) error {
	return runLifecycle(c, (*submission.Service).DeleteDocumentVerification)
}

// load a document, apply one write and print the result
func runLifecycle(c *cli.Context, operation lifecycle) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkId(c.String("id"))
	if nil != err {
		return err
	}
	table := tableName(c, m)

	store, err := m.store()
	if nil != err {
		return err
	}
	doc, err := store.Load(id)
	if nil != err {
		return err
	}
	signer, err := m.signer()
	if nil != err {
		return err
	}
	service, err := m.service(store)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "%s: document: %q  table: %q  signer: %s\n", c.Command.Name, id, table, signer.Address())
	}

	ctx, cancel := m.context()
	defer cancel()

	result, err := operation(service, ctx, doc, table, signer)
	if nil != err {
		return err
	}
	return printJson(m.w, result)
}

func runVerifyBatch(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	table := tableName(c, m)
	store, err := m.store()
	if nil != err {
		return err
	}

	ids := []string(c.Args())
	if c.Bool("all") {
		ids, err = store.List()
		if nil != err {
			return err
		}
	}
	if 0 == len(ids) {
		return fmt.Errorf("no documents given")
	}

	docs := make([]document.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := store.Load(id)
		if nil != err {
			return fmt.Errorf("document: %q  error: %s", id, err)
		}
		docs = append(docs, doc)
	}

	signer, err := m.signer()
	if nil != err {
		return err
	}
	service, err := m.service(store)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "verify-batch: %d documents  table: %q\n", len(docs), table)
	}

	ctx, cancel := m.context()
	defer cancel()

	result, err := service.VerifyDocumentBatch(ctx, docs, table, signer)
	if nil != err {
		return err
	}
	return printJson(m.w, result)
}

func runCheck(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkId(c.String("id"))
	if nil != err {
		return err
	}
	table := tableName(c, m)

	store, err := m.store()
	if nil != err {
		return err
	}
	doc, err := store.Load(id)
	if nil != err {
		return err
	}
	service, err := m.service(nil)
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	integrity, err := service.CheckDocumentIntegrity(ctx, doc, table)
	if nil != err {
		return err
	}
	return printJson(m.w, integrity)
}

type recordReply struct {
	Encoding string           `json:"encoding"`
	TableId  string           `json:"tableId"`
	RecordId string           `json:"recordId"`
	Exists   bool             `json:"exists"`
	Hash     digest.Digest    `json:"hash"`
	Metadata *ledger.Metadata `json:"metadata,omitempty"`
}

// the stored state of one record, straight from the ledger
func runRecord(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := checkId(c.String("id"))
	if nil != err {
		return err
	}
	table := tableName(c, m)
	encoding := m.config.Encoding
	if "" != c.String("encoding") {
		encoding = c.String("encoding")
	}

	client, err := m.facadeClient()
	if nil != err {
		return err
	}

	ctx, cancel := m.context()
	defer cancel()

	reply := recordReply{
		Encoding: encoding,
		TableId:  table,
		RecordId: id,
	}

	result, err := client.Query(ctx, ledger.RecordCall(ledger.MethodRecordExists, encoding, table, id))
	if nil != err {
		return err
	}
	if err := result.Decode(&reply.Exists); nil != err {
		return err
	}

	if reply.Exists {
		result, err = client.Query(ctx, ledger.RecordCall(ledger.MethodGetRecordHash, encoding, table, id))
		if nil != err {
			return err
		}
		if err := result.Decode(&reply.Hash); nil != err {
			return err
		}

		result, err = client.Query(ctx, ledger.RecordCall(ledger.MethodGetRecordMetadata, encoding, table, id))
		if nil != err {
			return err
		}
		reply.Metadata = &ledger.Metadata{}
		if err := result.Decode(reply.Metadata); nil != err {
			return err
		}
	}

	return printJson(m.w, reply)
}

func checkId(id string) (string, error) {
	if "" == id {
		return "", fmt.Errorf("document id is required")
	}
	return id, nil
}

func tableName(c *cli.Context, m *metadata) string {
	if table := c.String("table"); "" != table {
		return table
	}
	return m.config.Table
}
