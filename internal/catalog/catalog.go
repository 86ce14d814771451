// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog maintains the on-disk cache of Hugging Face router
// (sub-provider, model) pairs.
//
// The router's catalog is too large and too dynamic to hardcode, so the
// pairs offered in the model picker come from a discovery sweep against
// the Hugging Face Hub API. The sweep runs off the interactive path: a
// lookup never blocks on network I/O, it either serves the persisted
// record (when fresh) or reports a miss while a background sweep refills
// the cache for a later lookup.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/hydra-tui/internal/util"
)

// TTL is how long a persisted record is trusted before a new sweep is
// required.
const TTL = 24 * time.Hour

// cacheFileName is the cache document under the hydra config directory.
const cacheFileName = "hf_catalog.json"

// =============================================================================
// RECORD
// =============================================================================

// Pair is one (sub-provider, model) combination served by the router.
type Pair struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// String renders the pair the way the picker displays it.
func (p Pair) String() string {
	return p.Provider + " / " + p.Model
}

// Record is the persisted cache document. It is replaced wholesale by
// every successful sweep and never mutated in place.
type Record struct {
	// FetchedAt is the UTC completion time of the sweep that produced
	// this record.
	FetchedAt time.Time `json:"fetched_at"`

	// Pairs holds every discovered combination in first-seen order.
	// Duplicates are permitted.
	Pairs []Pair `json:"pairs"`
}

// Fresh reports whether the record is still within its TTL at the given
// instant.
func (r *Record) Fresh(now time.Time) bool {
	return now.Sub(r.FetchedAt) < TTL
}

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the cache document on disk.
type Store struct {
	path string
}

// NewStore creates a store for an explicit path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the cache document in the hydra config directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".hydra", cacheFileName)), nil
}

// Path returns the location of the cache document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. A missing file yields (nil, nil); a
// corrupt file yields an error.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache document: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cache document: %w", err)
	}
	return &rec, nil
}

// Write atomically replaces the cache document with the given record.
func (s *Store) Write(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache document: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache document: %w", err)
	}
	return nil
}
