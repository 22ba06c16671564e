// Package filter selects the enriched plays matching a situational scenario.
package filter

import "github.com/okian/playcall/internal/domain/model"

// Value domains of the categorical dimensions.
const (
	minTimeBucket = 1
	maxTimeBucket = 5
	maxMargin     = 3
	maxStatus     = model.StatusTrailing
	minDown       = 1
	maxDown       = 4
	maxPosition   = 50
)

// Dashboard defaults for the slider-driven dimensions.
const (
	DefaultYardLow      = -25
	DefaultYardHigh     = 25
	DefaultDistanceLow  = 1
	DefaultDistanceHigh = 10
	MaxDistanceOption   = 30
)

// Criteria holds one inclusion set per filtered dimension. Every predicate is
// always applied: an empty set excludes every row.
type Criteria struct {
	Teams          Set[int]
	HomeAway       Set[bool]
	TimeBuckets    Set[int]
	MarginBuckets  Set[int]
	ScoreStatuses  Set[int]
	FieldPositions Set[int]
	Downs          Set[int]
	Distances      Set[int]
}

// Apply returns the plays matching every predicate, in input order. Plays
// with nil game-level fields never match those predicates.
func Apply(rows []model.EnrichedPlay, c Criteria) []model.EnrichedPlay {
	out := make([]model.EnrichedPlay, 0)
	for _, p := range rows {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether p satisfies every predicate of c.
func (c Criteria) Match(p model.EnrichedPlay) bool {
	return c.Teams.Has(p.TeamID) &&
		p.IsHomeTeam != nil && c.HomeAway.Has(*p.IsHomeTeam) &&
		c.FieldPositions.Has(p.NormalizedFieldPosition) &&
		c.TimeBuckets.Has(p.TimeBucket) &&
		p.ScoreMarginBucket != nil && c.MarginBuckets.Has(*p.ScoreMarginBucket) &&
		p.ScoreStatus != nil && c.ScoreStatuses.Has(*p.ScoreStatus) &&
		c.Downs.Has(p.Down) &&
		c.Distances.Has(p.Distance)
}

// AllTimeBuckets selects every time bucket.
func AllTimeBuckets() Set[int] { return Range(minTimeBucket, maxTimeBucket) }

// AllMargins selects every margin bucket.
func AllMargins() Set[int] { return Range(0, maxMargin) }

// AllStatuses selects tied, leading and trailing.
func AllStatuses() Set[int] { return Range(model.StatusTied, maxStatus) }

// AllDowns selects downs one through four.
func AllDowns() Set[int] { return Range(minDown, maxDown) }

// AllFieldPositions selects every normalized field position.
func AllFieldPositions() Set[int] { return Range(0, maxPosition) }

// BothSettings selects home and away plays.
func BothSettings() Set[bool] { return Of(true, false) }

// AllInclusive selects every valid value in every dimension. Team and
// distance domains are taken from rows; the rest are fixed.
func AllInclusive(rows []model.EnrichedPlay) Criteria {
	teams := Set[int]{}
	distances := Set[int]{}
	positions := AllFieldPositions()
	downs := AllDowns()
	for _, p := range rows {
		teams[p.TeamID] = struct{}{}
		distances[p.Distance] = struct{}{}
		positions[p.NormalizedFieldPosition] = struct{}{}
		downs[p.Down] = struct{}{}
	}
	return Criteria{
		Teams:          teams,
		HomeAway:       BothSettings(),
		TimeBuckets:    AllTimeBuckets(),
		MarginBuckets:  AllMargins(),
		ScoreStatuses:  AllStatuses(),
		FieldPositions: positions,
		Downs:          downs,
		Distances:      distances,
	}
}

// YardRange converts a -50..50 slider selection to the normalized field
// positions it covers. A slider value y sits 50-|y| yards from a goal line.
func YardRange(lo, hi int) Set[int] {
	if lo > hi {
		lo, hi = hi, lo
	}
	out := Set[int]{}
	for y := lo; y <= hi; y++ {
		if y < -maxPosition || y > maxPosition {
			continue
		}
		d := y
		if d < 0 {
			d = -d
		}
		out[maxPosition-d] = struct{}{}
	}
	return out
}

// DashboardDefaults returns the scenario the dashboard opens with for team.
func DashboardDefaults(team int) Criteria {
	return Criteria{
		Teams:          Of(team),
		HomeAway:       BothSettings(),
		TimeBuckets:    AllTimeBuckets(),
		MarginBuckets:  AllMargins(),
		ScoreStatuses:  AllStatuses(),
		FieldPositions: YardRange(DefaultYardLow, DefaultYardHigh),
		Downs:          AllDowns(),
		Distances:      Range(DefaultDistanceLow, DefaultDistanceHigh),
	}
}
