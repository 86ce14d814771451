// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSweepInFlight is returned by Refresh when a sweep is already running.
var ErrSweepInFlight = errors.New("discovery sweep already in flight")

// Service serves cached (sub-provider, model) pairs and keeps them fresh
// without ever blocking the interactive path.
//
// At most one sweep runs at a time: the in-flight flag is checked-and-set
// under the mutex before a sweep launches and cleared when it completes,
// whether it succeeded or failed. Overlapping EnsureFresh calls while a
// sweep is running therefore never spawn a second one.
type Service struct {
	store   *Store
	sweeper *Sweeper

	mu       sync.Mutex
	inFlight bool

	// now is indirected for freshness tests.
	now func() time.Time

	// onSweepDone, when set, is invoked after a background sweep finishes.
	// The error is nil on success. Used by the TUI to refresh its picker.
	onSweepDone func(err error)
}

// NewService creates a catalog service over the given store and sweeper.
func NewService(store *Store, sweeper *Sweeper) *Service {
	return &Service{
		store:   store,
		sweeper: sweeper,
		now:     time.Now,
	}
}

// DefaultService creates a service over the default on-disk store and the
// public Hub API.
func DefaultService() (*Service, error) {
	store, err := DefaultStore()
	if err != nil {
		return nil, err
	}
	return NewService(store, NewSweeper()), nil
}

// WithClock overrides the freshness clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// OnSweepDone registers a completion callback for background sweeps.
// It runs on the sweep goroutine.
func (s *Service) OnSweepDone(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSweepDone = fn
}

// CachedPairs returns the persisted pairs when a record exists and is
// fresh, or nil otherwise. It performs no network I/O and never blocks on
// a sweep. A corrupt cache document is treated as a miss.
//
// A fresh record always yields a non-nil slice, even when the sweep that
// produced it discovered nothing: an empty catalog is a hit, not a miss,
// and must not trigger re-sweeping for the rest of its TTL.
func (s *Service) CachedPairs() []Pair {
	rec, err := s.store.Load()
	if err != nil || rec == nil {
		return nil
	}
	if !rec.Fresh(s.now()) {
		return nil
	}
	if rec.Pairs == nil {
		// Record present but pair list serialized as null.
		return []Pair{}
	}
	return rec.Pairs
}

// EnsureFresh returns CachedPairs and, on a miss or stale record,
// launches one asynchronous discovery sweep. The caller is not given a
// handle to the sweep; it may see nil now and fresh pairs on a later
// call after the sweep lands.
func (s *Service) EnsureFresh() []Pair {
	pairs := s.CachedPairs()
	if pairs != nil {
		return pairs
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	done := s.onSweepDone
	s.mu.Unlock()

	// No cancellation: a launched sweep runs to completion or failure.
	go func() {
		err := s.refresh(context.Background())
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
		if done != nil {
			done(err)
		}
	}()

	return nil
}

// Refresh runs one sweep synchronously and persists the result. It shares
// the in-flight guard with EnsureFresh: if a background sweep is already
// running it returns ErrSweepInFlight instead of racing it.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSweepInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	err := s.refresh(ctx)

	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
	return err
}

// refresh performs the sweep and, only on success, atomically replaces
// the persisted record. A failed sweep writes nothing; the prior record
// (if any) stays byte-for-byte intact and the next lookup may trigger a
// new attempt.
func (s *Service) refresh(ctx context.Context) error {
	pairs, err := s.sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	return s.store.Write(&Record{
		FetchedAt: s.now().UTC(),
		Pairs:     pairs,
	})
}

// Stale reports whether the persisted record is absent or out of TTL.
// Used by the cache status command.
func (s *Service) Stale() bool {
	return s.CachedPairs() == nil
}

// FetchedAt returns the record timestamp and true when a record exists,
// fresh or not.
func (s *Service) FetchedAt() (time.Time, bool) {
	rec, err := s.store.Load()
	if err != nil || rec == nil {
		return time.Time{}, false
	}
	return rec.FetchedAt, true
}
