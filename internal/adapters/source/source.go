// Package source loads the raw team, game and play tables.
package source

import (
	"context"
	"errors"

	"github.com/okian/playcall/internal/domain/model"
)

// Sentinel kinds for loader errors.
var (
	ErrLoad          = errors.New("load source table failed")
	ErrMissingColumn = errors.New("required column missing")
	ErrBadValue      = errors.New("bad cell value")
	ErrUnknownKind   = errors.New("unknown source kind")
)

// Loader reads the three raw tables.
type Loader interface {
	LoadTeams(ctx context.Context) ([]model.Team, error)
	LoadTeamGames(ctx context.Context) ([]model.TeamGameResult, error)
	LoadPlays(ctx context.Context) ([]model.PlayRecord, error)
}

// Dataset is one consistent read of every raw table.
type Dataset struct {
	Teams     []model.Team
	TeamGames []model.TeamGameResult
	Plays     []model.PlayRecord
}

// LoadAll reads every table from l.
func LoadAll(ctx context.Context, l Loader) (Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	if ds.Teams, err = l.LoadTeams(ctx); err != nil {
		return Dataset{}, err
	}
	if ds.TeamGames, err = l.LoadTeamGames(ctx); err != nil {
		return Dataset{}, err
	}
	if ds.Plays, err = l.LoadPlays(ctx); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Static serves a fixed Dataset. It is used by tests and by callers that
// assemble tables in memory.
type Static Dataset

// LoadTeams implements Loader.
func (s Static) LoadTeams(context.Context) ([]model.Team, error) { return s.Teams, nil }

// LoadTeamGames implements Loader.
func (s Static) LoadTeamGames(context.Context) ([]model.TeamGameResult, error) {
	return s.TeamGames, nil
}

// LoadPlays implements Loader.
func (s Static) LoadPlays(context.Context) ([]model.PlayRecord, error) { return s.Plays, nil }
