// Package games flattens per-team-per-game rows into one outcome per game.
package games

import (
	"strings"

	"github.com/okian/playcall/internal/domain/model"
)

// Report counts the rows the flattener could not pair cleanly.
type Report struct {
	HomeRows      int `json:"home_rows"`
	AwayRows      int `json:"away_rows"`
	UnknownTag    int `json:"unknown_tag"`
	OrphanAway    int `json:"orphan_away"`    // away rows whose game has no home row; dropped
	MissingAway   int `json:"missing_away"`   // games emitted with a nil Away side
	DuplicateHome int `json:"duplicate_home"` // extra home rows for an already seen game; ignored
	DuplicateAway int `json:"duplicate_away"` // extra away rows for an already paired game; ignored
}

type homeRow struct {
	side   model.Side
	gameID int
	winner bool
}

// Flatten left-joins away rows onto home rows by game id. The output follows
// the order of home rows in the input.
func Flatten(rows []model.TeamGameResult) ([]model.GameOutcome, Report) {
	var (
		rep   Report
		homes []homeRow
		seen  = make(map[int]struct{})
		away  = make(map[int]model.Side)
	)

	for _, r := range rows {
		side := model.Side{TeamID: r.TeamID, Score: r.Score, Record: r.Record, Abbreviation: r.Abbreviation}
		switch strings.ToLower(strings.TrimSpace(r.HomeAway)) {
		case model.TagHome:
			rep.HomeRows++
			if _, dup := seen[r.GameID]; dup {
				rep.DuplicateHome++
				continue
			}
			seen[r.GameID] = struct{}{}
			homes = append(homes, homeRow{side: side, gameID: r.GameID, winner: r.Winner})
		case model.TagAway:
			rep.AwayRows++
			if _, dup := away[r.GameID]; dup {
				rep.DuplicateAway++
				continue
			}
			away[r.GameID] = side
		default:
			rep.UnknownTag++
		}
	}

	out := make([]model.GameOutcome, 0, len(homes))
	for _, h := range homes {
		g := model.GameOutcome{GameID: h.gameID, Home: h.side}
		if a, ok := away[h.gameID]; ok {
			g.Away = &a
		} else {
			rep.MissingAway++
		}
		switch {
		case h.winner:
			id := h.side.TeamID
			g.WinningTeamID = &id
		case g.Away != nil:
			id := g.Away.TeamID
			g.WinningTeamID = &id
		}
		out = append(out, g)
	}

	for id := range away {
		if _, ok := seen[id]; !ok {
			rep.OrphanAway++
		}
	}
	return out, rep
}

// Index maps game id to outcome, keeping the first outcome per game.
func Index(outcomes []model.GameOutcome) map[int]model.GameOutcome {
	idx := make(map[int]model.GameOutcome, len(outcomes))
	for _, g := range outcomes {
		if _, ok := idx[g.GameID]; !ok {
			idx[g.GameID] = g
		}
	}
	return idx
}
