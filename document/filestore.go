// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bitmark-inc/hashledger/fault"
)

// file name extension of stored documents
const Extension = ".json"

// FileStore - records kept as one JSON file each in a directory
type FileStore struct {
	sync.Mutex
	directory string
}

// NewFileStore - use (and create if needed) a directory
func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0o700); nil != err {
		return nil, err
	}
	return &FileStore{
		directory: directory,
	}, nil
}

// Directory - the directory holding the files
func (s *FileStore) Directory() string {
	return s.directory
}

// Path - file name of a document
func (s *FileStore) Path(id string) (string, error) {
	if "" == id || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return "", fault.ErrInvalidDocumentId
	}
	return filepath.Join(s.directory, id+Extension), nil
}

// IdFromPath - document id of a file name, false if not a document file
func IdFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, Extension) || strings.HasPrefix(base, ".") {
		return "", false
	}
	return strings.TrimSuffix(base, Extension), true
}

// Load - read a record
func (s *FileStore) Load(id string) (Document, error) {
	return s.LoadRecord(id)
}

// LoadRecord - read a record without the interface conversion
func (s *FileStore) LoadRecord(id string) (*Record, error) {
	path, err := s.Path(id)
	if nil != err {
		return nil, err
	}

	s.Lock()
	buffer, err := os.ReadFile(path)
	s.Unlock()

	if os.IsNotExist(err) {
		return nil, fault.ErrDocumentNotFound
	} else if nil != err {
		return nil, err
	}

	r := &Record{}
	if err := json.Unmarshal(buffer, r); nil != err {
		return nil, err
	}
	if "" == r.ID {
		r.ID = id
	}
	if nil == r.Fields {
		r.Fields = make(map[string]interface{})
	}
	return r, nil
}

// Save - write a document, replacing the file atomically
func (s *FileStore) Save(doc Document) error {
	path, err := s.Path(doc.Id())
	if nil != err {
		return err
	}
	buffer, err := json.MarshalIndent(doc, "", "  ")
	if nil != err {
		return err
	}

	s.Lock()
	defer s.Unlock()

	temp := path + ".tmp"
	if err := os.WriteFile(temp, buffer, 0o600); nil != err {
		return err
	}
	return os.Rename(temp, path)
}

// List - ids of all stored documents
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if nil != err {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := IdFromPath(e.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
