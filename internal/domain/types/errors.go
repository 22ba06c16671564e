package types

import "errors"

// Errors shared by the service and its transports.
var (
	ErrNotReady    = errors.New("play table not built yet")
	ErrUnknownTeam = errors.New("unknown team")
)
