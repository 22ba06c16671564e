package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New("cache miss")
	// ErrUnavailable wraps failures of the backing store.
	ErrUnavailable = errors.New("cache unavailable")
)
