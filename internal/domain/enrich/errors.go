package enrich

import "errors"

// Sentinel kinds for enrichment errors.
var (
	ErrMalformedClock = errors.New("malformed game clock")
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrOutOfRange     = errors.New("elapsed seconds out of range")
	ErrUnknownPolicy  = errors.New("unknown malformed row policy")
)
