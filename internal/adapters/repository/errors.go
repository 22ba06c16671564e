package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNoSnapshot    = errors.New("no play table published yet")
	ErrNilResult     = errors.New("nil pipeline result")
	ErrStoreShutdown = errors.New("snapshot store closed")
)
