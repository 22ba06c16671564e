// Package repository holds the published play table snapshots.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/playcall/internal/pipeline"
	"github.com/okian/playcall/pkg/metrics"
)

// Snapshot is an immutable published play table.
type Snapshot struct {
	Result      *pipeline.Result
	Version     uint64
	PublishedAt time.Time
}

// Fingerprint returns the fingerprint of the raw tables behind s.
func (s Snapshot) Fingerprint() uint64 { return s.Result.Fingerprint }

// Store provides read/write access to the current play table.
type Store interface {
	// Publish replaces the current snapshot with res unless res has the same
	// fingerprint as the current one. It reports whether a replacement happened.
	Publish(ctx context.Context, res *pipeline.Result) (bool, error)

	// Current returns the latest snapshot or ErrNoSnapshot.
	Current(ctx context.Context) (Snapshot, error)
}

// SnapshotStore is an in-memory Store. Readers see either the previous or
// the next snapshot, never a partial one.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *Snapshot
	past    []Snapshot
	history int
	closed  bool
	now     func() time.Time
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{now: time.Now, history: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish implements Store.
func (s *SnapshotStore) Publish(_ context.Context, res *pipeline.Result) (bool, error) {
	if res == nil {
		return false, ErrNilResult
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreShutdown
	}
	now := s.now()
	if s.current != nil && s.current.Result.Fingerprint == res.Fingerprint {
		metrics.RecordSnapshot(false, now.Unix())
		return false, nil
	}

	next := &Snapshot{Result: res, PublishedAt: now, Version: 1}
	if s.current != nil {
		next.Version = s.current.Version + 1
		if s.history > 0 {
			s.past = append(s.past, *s.current)
			if len(s.past) > s.history {
				s.past = s.past[len(s.past)-s.history:]
			}
		}
	}
	s.current = next
	metrics.RecordSnapshot(true, now.Unix())
	return true, nil
}

// Current implements Store.
func (s *SnapshotStore) Current(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *s.current, nil
}

// History returns the superseded snapshots kept by the store, oldest first.
func (s *SnapshotStore) History(_ context.Context) []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, len(s.past))
	copy(out, s.past)
	return out
}

// Close drops every snapshot; later publishes fail.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.current = nil
	s.past = nil
	return nil
}
