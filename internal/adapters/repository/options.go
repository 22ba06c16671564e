// Package repository holds the published play table snapshots.
package repository

import "time"

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithClock overrides the time source used for publish timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHistory sets how many superseded snapshots are kept for inspection.
func WithHistory(n int) Option {
	return func(s *SnapshotStore) {
		if n >= 0 {
			s.history = n
		}
	}
}
