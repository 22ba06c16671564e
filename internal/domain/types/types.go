// Package types contains response shapes shared by the service and the HTTP layer.
package types

import (
	"fmt"

	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/kpi"
	"github.com/okian/playcall/internal/domain/model"
)

// Summary is the scenario report for a filtered subset of plays.
type Summary struct {
	Fingerprint string            `json:"fingerprint"`
	Matched     int               `json:"matched"`
	KPIs        kpi.KPIs          `json:"kpis"`
	Breakdown   kpi.PlayBreakdown `json:"breakdown"`
	KeyPlays    []string          `json:"key_plays"`
	Cached      bool              `json:"cached"`
}

// NewSummary computes the report for rows.
func NewSummary(fingerprint uint64, rows []model.EnrichedPlay, keyPlayLimit int) Summary {
	return Summary{
		Fingerprint: FormatFingerprint(fingerprint),
		Matched:     len(rows),
		KPIs:        kpi.Compute(rows),
		Breakdown:   kpi.Breakdown(rows),
		KeyPlays:    kpi.KeyPlays(rows, keyPlayLimit),
	}
}

// RefreshResult describes one reload of the raw tables.
type RefreshResult struct {
	Changed     bool   `json:"changed"`
	Fingerprint string `json:"fingerprint"`
	Version     uint64 `json:"version"`
	Plays       int    `json:"plays"`
}

// Options lists the selectable values of every filter dimension.
type Options struct {
	TimeBuckets   []model.Label `json:"time_buckets"`
	MarginBuckets []model.Label `json:"margin_buckets"`
	ScoreStatuses []model.Label `json:"score_statuses"`
	Settings      []model.Label `json:"settings"`
	Downs         []int         `json:"downs"`
	Distances     []int         `json:"distances"`
	YardLines     []model.Label `json:"yard_lines"`
}

// yardLineStep spaces the labelled slider positions.
const yardLineStep = 5

// DashboardOptions returns the option tables of the dashboard filters.
func DashboardOptions() Options {
	o := Options{
		TimeBuckets:   append([]model.Label(nil), model.TimeBucketLabels...),
		MarginBuckets: append([]model.Label(nil), model.MarginBucketLabels...),
		ScoreStatuses: append([]model.Label(nil), model.ScoreStatusLabels...),
		Settings:      append([]model.Label(nil), model.SettingLabels...),
	}
	for d := 1; d <= 4; d++ {
		o.Downs = append(o.Downs, d)
	}
	for d := 1; d <= filter.MaxDistanceOption; d++ {
		o.Distances = append(o.Distances, d)
	}
	for y := -50; y <= 50; y += yardLineStep {
		o.YardLines = append(o.YardLines, model.Label{Label: model.YardLineLabel(y), Value: y})
	}
	return o
}

// FormatFingerprint renders a fingerprint as fixed-width hex.
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
