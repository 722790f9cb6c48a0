// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/ipchaind/fault"
)

// levelWatcher - reloads log levels when the configuration file is
// written
type levelWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	reload   func() (map[string]string, error)
	changed  chan struct{}
}

func newLevelWatcher(targetFile string, reload func() (map[string]string, error)) (*levelWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fault.InvalidConfiguration
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// editors often replace the file, so watch the directory
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &levelWatcher{
		log:      logger.New("file-watcher"),
		watcher:  watcher,
		filePath: filePath,
		reload:   reload,
		changed:  make(chan struct{}, 1),
	}, nil
}

// Run - background loop
func (w *levelWatcher) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log

	log.Infof("starting…  watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath || !isFileChange(event) {
				continue
			}
			log.Infof("file event: %v", event)
			w.apply()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
	w.watcher.Close()
	log.Info("shutting down…")
}

func (w *levelWatcher) apply() {
	levels, err := w.reload()
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.filePath, err)
		return
	}
	logger.LoadLevels(levels)
	w.log.Infof("log levels: %v", levels)

	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func isFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
