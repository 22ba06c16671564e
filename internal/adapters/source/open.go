package source

import (
	"context"
	"fmt"
	"strings"
)

// Settings selects and configures a Loader.
type Settings struct {
	Kind      string
	DataDir   string
	TeamsFile string
	GamesFile string
	PlaysFile string
	DSN       string
}

// Open builds the Loader named by s.Kind. SQL loaders hold a connection and
// should be closed by the caller through io.Closer.
func Open(ctx context.Context, s Settings) (Loader, error) {
	switch strings.ToLower(s.Kind) {
	case "", KindCSV:
		return NewCSVLoader(s.DataDir,
			WithTeamsFile(s.TeamsFile),
			WithGamesFile(s.GamesFile),
			WithPlaysFile(s.PlaysFile),
		), nil
	case KindSQLite, KindPostgres:
		return OpenSQL(ctx, strings.ToLower(s.Kind), s.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}
