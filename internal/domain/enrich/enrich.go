// Package enrich joins cleaned plays to game outcomes and derives the
// situational fields used for filtering.
package enrich

import (
	"fmt"
	"strings"

	"github.com/okian/playcall/internal/domain/games"
	"github.com/okian/playcall/internal/domain/model"
)

// Policy decides what happens to a play whose clock or period cannot be parsed.
type Policy string

// Malformed row policies.
const (
	PolicyFail Policy = "fail"
	PolicySkip Policy = "skip"
)

// ParsePolicy parses a policy name, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFail, PolicySkip:
		return p, nil
	case "":
		return PolicyFail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Option applies a configuration option to Enrich.
type Option func(*options)

type options struct {
	policy Policy
}

// WithPolicy sets the malformed row policy. Unknown policies are ignored.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p == PolicyFail || p == PolicySkip {
			o.policy = p
		}
	}
}

// RowError describes a play that could not be enriched.
type RowError struct {
	Index int
	Play  model.PlayRecord
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("play %d (game %d, period %d, clock %q): %v", e.Index, e.Play.GameID, e.Play.Period, e.Play.Clock, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Report summarizes an enrichment run.
type Report struct {
	Input       int `json:"input"`
	Output      int `json:"output"`
	Skipped     int `json:"skipped"`
	MissingGame int `json:"missing_game"` // plays with no outcome row; game fields are nil
	MissingSide int `json:"missing_side"` // plays whose outcome lacks the away side
}

// Enrich derives an EnrichedPlay for each play, left-joined to outcomes by
// game id. Under PolicyFail the first malformed row aborts the run with a
// *RowError; under PolicySkip such rows are dropped and counted.
func Enrich(rows []model.PlayRecord, outcomes []model.GameOutcome, opts ...Option) ([]model.EnrichedPlay, Report, error) {
	o := options{policy: PolicyFail}
	for _, opt := range opts {
		opt(&o)
	}

	idx := games.Index(outcomes)
	rep := Report{Input: len(rows)}
	out := make([]model.EnrichedPlay, 0, len(rows))

	for i, r := range rows {
		g, found := idx[r.GameID]
		var gp *model.GameOutcome
		if found {
			gp = &g
		}
		ep, err := Play(r, gp)
		if err != nil {
			if o.policy == PolicySkip {
				rep.Skipped++
				continue
			}
			return nil, rep, &RowError{Index: i, Play: r, Err: err}
		}
		switch {
		case !found:
			rep.MissingGame++
		case g.Away == nil:
			rep.MissingSide++
		}
		out = append(out, ep)
	}
	rep.Output = len(out)
	return out, rep, nil
}

// Play enriches a single play. game may be nil when the play's game has no
// outcome row.
func Play(r model.PlayRecord, game *model.GameOutcome) (model.EnrichedPlay, error) {
	elapsed, err := ElapsedSeconds(r.Period, r.Clock)
	if err != nil {
		return model.EnrichedPlay{}, err
	}
	bucket, err := TimeBucket(elapsed)
	if err != nil {
		return model.EnrichedPlay{}, err
	}

	ep := model.EnrichedPlay{
		PlayRecord:              r,
		ElapsedSeconds:          elapsed,
		TimeBucket:              bucket,
		NormalizedFieldPosition: NormalizeFieldPosition(r.FieldPosition),
		FieldPositionZone:       FieldPositionZone(r.FieldPosition),
	}
	if game == nil {
		return ep, nil
	}

	isHome := r.TeamID == game.Home.TeamID
	ep.IsHomeTeam = &isHome
	if game.Away == nil {
		return ep, nil
	}

	margin := MarginBucket(game.Home.Score, game.Away.Score)
	ep.ScoreMarginBucket = &margin

	switch r.TeamID {
	case game.Home.TeamID:
		s := ScoreStatus(game.Home.Score, game.Away.Score)
		ep.ScoreStatus = &s
	case game.Away.TeamID:
		s := ScoreStatus(game.Away.Score, game.Home.Score)
		ep.ScoreStatus = &s
	}
	return ep, nil
}
