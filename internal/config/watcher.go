// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of fsnotify events an editor save
// produces into a single reload.
const debounceDelay = 200 * time.Millisecond

// Watcher reloads the settings document when it changes on disk, so edits
// made outside a running session take effect without a restart.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(*Settings)
	done     chan struct{}
}

// NewWatcher starts watching the configuration directory. onChange is
// invoked with the freshly loaded settings after every observed change;
// it runs on the watcher goroutine.
func NewWatcher(onChange func(*Settings)) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory, not the file: atomic rename-in-place replaces
	// the inode, which a file-level watch would lose track of.
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var pending <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isSettingsFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(debounceDelay)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal to the session; the next explicit
			// Load still reads current state.
		case <-pending:
			pending = nil
			s, err := Load()
			if err != nil {
				continue
			}
			SetGlobal(s)
			if w.onChange != nil {
				w.onChange(s)
			}
		}
	}
}

func isSettingsFile(path string) bool {
	base := filepath.Base(path)
	return base == "config.toml" || base == "config.json"
}
