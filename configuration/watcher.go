// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - signals changes to the configuration file
//
// the channels have room for one event, further events are dropped
// until the first is consumed
type Watcher struct {
	sync.Mutex

	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
	done     chan struct{}
	stopped  bool
}

// NewWatcher - prepare to watch a file, which must exist
func NewWatcher(targetFile string, log *logger.L) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Change - receives after the file is written
func (w *Watcher) Change() <-chan struct{} {
	return w.change
}

// Remove - receives once if the file is removed or renamed
func (w *Watcher) Remove() <-chan struct{} {
	return w.remove
}

// Start - begin watching
//
// the directory is watched so editors that replace the file are seen
func (w *Watcher) Start() error {
	err := w.watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s, abort", err)
		return err
	}

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	base := filepath.Base(w.filePath)
loop:
	for {
		select {
		case <-w.done:
			break loop

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Warnf("watcher error: %s", err)

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != base {
				continue loop
			}
			w.log.Debugf("file event: %v", event)

			switch {
			case isChange(event):
				w.log.Info("sending config change event…")
				w.send(w.change, "change")
			case isRemove(event):
				w.log.Warnf("file %s removed", w.filePath)
				w.send(w.remove, "remove")
			}
		}
	}
	w.log.Debug("stopped")
}

func (w *Watcher) send(ch chan struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

// Stop - stop watching, safe to call more than once
func (w *Watcher) Stop() error {
	w.Lock()
	defer w.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.watcher.Close()
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
