package service

import (
	"errors"

	"github.com/okian/playcall/internal/domain/types"
)

// Sentinel kinds for service errors.
var (
	ErrNoLoader    = errors.New("no raw table loader configured")
	ErrNotReady    = types.ErrNotReady
	ErrUnknownTeam = types.ErrUnknownTeam
)
