// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/configuration"
	"github.com/bitmark-inc/hashledger/document"
	"github.com/bitmark-inc/hashledger/submission"
	"github.com/bitmark-inc/hashledger/throttle"
)

// keeps the documents of a directory verified
type documentWatcher struct {
	log     *logger.L
	service *submission.Service
	store   *document.FileStore
	table   string
	signer  *account.Signer
	timeout time.Duration
}

// check one changed file and write its hash again if it is new or
// its content no longer matches the ledger
//
// archived documents are left alone
func (w *documentWatcher) handle(ctx context.Context, path string) (*submission.Integrity, *submission.Result, error) {
	id, ok := document.IdFromPath(path)
	if !ok {
		return nil, nil, nil
	}

	doc, err := w.store.Load(id)
	if nil != err {
		return nil, nil, err
	}
	if doc.Verification().IsArchived {
		w.log.Debugf("document: %s is archived", id)
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	integrity, err := w.service.CheckDocumentIntegrity(ctx, doc, w.table)
	if nil != err {
		return nil, nil, err
	}

	switch integrity.Status {
	case submission.Valid:
		return integrity, nil, nil
	case submission.Tampered:
		w.log.Warnf("document: %s changed  stored: %s  current: %s", id, integrity.StoredHash, integrity.CurrentHash)
	case submission.NotVerified:
		if integrity.MockMode {
			return integrity, nil, nil
		}
		w.log.Infof("document: %s is not verified", id)
	}

	result, err := w.service.VerifyDocument(ctx, doc, w.table, w.signer)
	if nil != err {
		return integrity, nil, err
	}
	return integrity, result, nil
}

func runWatch(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	store, err := m.store()
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

	w := &documentWatcher{
		log:     logger.New("watch"),
		service: service,
		store:   store,
		table:   tableName(c, m),
		signer:  signer,
		timeout: m.config.Timeout(),
	}

	documents, err := configuration.NewDirectoryWatcher(store.Directory(), document.Extension, w.log)
	if nil != err {
		return err
	}
	if err := documents.Start(); nil != err {
		return err
	}
	defer documents.Stop()

	settings, err := configuration.NewFileWatcher(m.file, w.log)
	if nil != err {
		return err
	}
	if err := settings.Start(); nil != err {
		return err
	}
	defer settings.Stop()

	fmt.Fprintf(m.w, "watching: %q  table: %q  (CTRL-C to stop)\n", store.Directory(), w.table)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case sig := <-ch:
			w.log.Infof("received signal: %v", sig)
			return nil

		case path := <-documents.Files():
			integrity, result, err := w.handle(ctx, path)
			if nil != err {
				w.log.Errorf("document: %q  error: %s", path, err)
				fmt.Fprintf(m.e, "%s: %s\n", path, err)
				continue
			}
			if nil != result {
				fmt.Fprintf(m.w, "%s: %s -> verified  tx: %s\n", path, integrity.Status, result.TransactionHash)
			} else if m.verbose && nil != integrity {
				fmt.Fprintf(m.e, "%s: %s\n", path, integrity.Status)
			}

		case <-settings.Change():
			reloadThrottle(m, w.log)

		case <-settings.Remove():
			w.log.Warnf("configuration: %q removed, keeping current settings", m.file)
		}
	}
}

// apply the throttle section of a changed configuration file
func reloadThrottle(m *metadata, log *logger.L) {
	if nil == m.throttler {
		return
	}

	updated, err := getConfiguration(m.file)
	if nil != err {
		log.Errorf("reload: %q  error: %s", m.file, err)
		return
	}
	settings, err := updated.Throttle.Settings()
	if nil != err {
		log.Errorf("reload: %q  error: %s", m.file, err)
		return
	}
	if err := m.throttler.Reconfigure(settings); nil != err {
		log.Errorf("reconfigure error: %s", err)
		return
	}

	for _, op := range throttle.Operations() {
		if settings.Locks[op] {
			log.Warnf("operation: %s is locked", op)
		}
	}
	log.Infof("throttle reconfigured: %+v", m.throttler.Status())
}
