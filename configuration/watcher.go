// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/hashledger/fault"
)

// FileWatcher - reports writes to a single file
//
// the parent directory is watched so that editors replacing the file
// by rename are also seen
type FileWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewFileWatcher - watcher for an existing file
func NewFileWatcher(fileName string, log *logger.L) (*FileWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	if info, err := os.Stat(filePath); nil != err {
		return nil, err
	} else if info.IsDir() {
		return nil, fault.ErrInvalidConfiguration
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	return &FileWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Change - receives after the file was written
//
// bursts of writes are coalesced into one notification
func (w *FileWatcher) Change() <-chan struct{} {
	return w.change
}

// Remove - receives when the file was deleted
func (w *FileWatcher) Remove() <-chan struct{} {
	return w.remove
}

// Start - begin watching
func (w *FileWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.filePath)); nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warnf("watch: %s  error: %s", w.filePath, err)
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.filePath {
					continue
				}
				w.log.Debugf("file event: %s", event)

				switch {
				case isRemove(event):
					w.log.Warnf("file: %s removed", w.filePath)
					notify(w.remove)
				case isChange(event):
					notify(w.change)
				}
			}
		}
	}()
	return nil
}

// Stop - stop watching and wait for the background loop
func (w *FileWatcher) Stop() {
	close(w.done)
	w.watcher.Close()
	w.wg.Wait()
}

// DirectoryWatcher - reports the files written in one directory
type DirectoryWatcher struct {
	log       *logger.L
	watcher   *fsnotify.Watcher
	directory string
	extension string
	files     chan string
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewDirectoryWatcher - watcher for files with a given extension,
// an empty extension matches every file
func NewDirectoryWatcher(directory string, extension string, log *logger.L) (*DirectoryWatcher, error) {
	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}
	if info, err := os.Stat(directory); nil != err {
		return nil, err
	} else if !info.IsDir() {
		return nil, fault.ErrInvalidDirectory
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	return &DirectoryWatcher{
		log:       log,
		watcher:   watcher,
		directory: directory,
		extension: extension,
		files:     make(chan string, 100),
		done:      make(chan struct{}),
	}, nil
}

// Files - paths of files created or written
func (w *DirectoryWatcher) Files() <-chan string {
	return w.files
}

// Start - begin watching
func (w *DirectoryWatcher) Start() error {
	if err := w.watcher.Add(w.directory); nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warnf("watch: %s  error: %s", w.directory, err)
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if "" != w.extension && filepath.Ext(event.Name) != w.extension {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				select {
				case w.files <- filepath.Clean(event.Name):
				case <-w.done:
					return
				}
			}
		}
	}()
	return nil
}

// Stop - stop watching and wait for the background loop
func (w *DirectoryWatcher) Stop() {
	close(w.done)
	w.watcher.Close()
	w.wg.Wait()
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove
}

// renames into place arrive as Create on the target name
func isChange(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) != 0
}
