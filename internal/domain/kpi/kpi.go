// Package kpi computes summary statistics and highlights over a filtered
// set of plays.
package kpi

import (
	"slices"

	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/playtype"
)

// Thresholds for play quality counts.
const (
	ExplosiveYards      = 20
	DefaultKeyPlayLimit = 5
)

// KPIs are the headline counts and rates for a subset of plays.
type KPIs struct {
	TotalPlays     int     `json:"total_plays"`
	ScoringPlays   int     `json:"scoring_plays"`
	ScoringRate    float64 `json:"scoring_rate"`
	ExplosivePlays int     `json:"explosive_plays"`
	ExplosiveRate  float64 `json:"explosive_rate"`
	NegativePlays  int     `json:"negative_plays"`
	NegativeRate   float64 `json:"negative_rate"`
	Turnovers      int     `json:"turnovers"`
	TurnoverRate   float64 `json:"turnover_rate"`
}

// CategoryShare is the count and share of one play category.
type CategoryShare struct {
	Category playtype.Category `json:"category"`
	Count    int               `json:"count"`
	Percent  float64           `json:"percent"`
}

// PlayBreakdown lists the non-empty categories in reporting order.
type PlayBreakdown struct {
	Total      int             `json:"total"`
	Categories []CategoryShare `json:"categories"`
}

// Counts returns the breakdown as a category to count map.
func (b PlayBreakdown) Counts() map[playtype.Category]int {
	out := make(map[playtype.Category]int, len(b.Categories))
	for _, c := range b.Categories {
		out[c.Category] = c.Count
	}
	return out
}

func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Compute returns the headline KPIs. Explosive and turnover rates are over
// all plays; the negative rate is over plays outside special teams.
func Compute(rows []model.EnrichedPlay) KPIs {
	k := KPIs{TotalPlays: len(rows)}
	offense := 0
	for _, p := range rows {
		if p.Scoring {
			k.ScoringPlays++
		}
		if playtype.IsSpecialTeams(p.PlayTypeID) {
			continue
		}
		offense++
		if p.Yards >= ExplosiveYards {
			k.ExplosivePlays++
		}
		if p.Yards < 0 {
			k.NegativePlays++
		}
		if playtype.IsTurnover(p.PlayTypeID) {
			k.Turnovers++
		}
	}
	k.ScoringRate = rate(k.ScoringPlays, k.TotalPlays)
	k.ExplosiveRate = rate(k.ExplosivePlays, k.TotalPlays)
	k.NegativeRate = rate(k.NegativePlays, offense)
	k.TurnoverRate = rate(k.Turnovers, k.TotalPlays)
	return k
}

// Breakdown partitions rows by play category. Categories with no plays are
// omitted and plays outside every category are not counted, but Total and
// the percentages use the full row count.
func Breakdown(rows []model.EnrichedPlay) PlayBreakdown {
	counts := make(map[playtype.Category]int, len(playtype.Categories))
	for _, p := range rows {
		if c, ok := playtype.CategoryOf(p.PlayTypeID); ok {
			counts[c]++
		}
	}
	b := PlayBreakdown{Total: len(rows), Categories: []CategoryShare{}}
	for _, c := range playtype.Categories {
		if n := counts[c]; n > 0 {
			b.Categories = append(b.Categories, CategoryShare{Category: c, Count: n, Percent: rate(n, b.Total)})
		}
	}
	return b
}

// KeyPlays returns the descriptions of up to limit highlight plays: scoring
// plays first in input order, then the rest by yards gained, longest first.
// Special teams plays are never highlighted.
func KeyPlays(rows []model.EnrichedPlay, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	var scoring, other []model.EnrichedPlay
	for _, p := range rows {
		if playtype.IsSpecialTeams(p.PlayTypeID) {
			continue
		}
		if p.Scoring {
			scoring = append(scoring, p)
		} else {
			other = append(other, p)
		}
	}
	slices.SortStableFunc(other, func(a, b model.EnrichedPlay) int {
		return b.Yards - a.Yards
	})

	ordered := append(scoring, other...)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	out := make([]string, len(ordered))
	for i, p := range ordered {
		out[i] = p.Text
	}
	return out
}
