// Package pipeline composes the flatten, clean and enrich stages into the
// query-ready play table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/playcall/internal/adapters/source"
	"github.com/okian/playcall/internal/domain/enrich"
	"github.com/okian/playcall/internal/domain/games"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/plays"
	"github.com/okian/playcall/internal/domain/teams"
	"github.com/okian/playcall/pkg/logger"
	"github.com/okian/playcall/pkg/metrics"
)

// Report collects the per-stage reports of one build.
type Report struct {
	Games    games.Report      `json:"games"`
	Clean    plays.CleanReport `json:"clean"`
	Enrich   enrich.Report     `json:"enrich"`
	Duration time.Duration     `json:"duration"`
}

// Result is an enriched, query-ready table and the reference data it was
// built from.
type Result struct {
	Teams       *teams.Directory
	Outcomes    []model.GameOutcome
	Plays       []model.EnrichedPlay
	Fingerprint uint64
	Report      Report
}

// Option applies a configuration option to a build.
type Option func(*options)

type options struct {
	policy enrich.Policy
	log    logger.Logger
}

// WithPolicy sets the malformed row policy used by the enrich stage.
func WithPolicy(p enrich.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger used to report stage edge cases.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Build loads every raw table from l and runs the full pipeline.
func Build(ctx context.Context, l source.Loader, opts ...Option) (*Result, error) {
	ds, err := source.LoadAll(ctx, l)
	if err != nil {
		return nil, err
	}
	return FromDataset(ctx, ds, opts...)
}

// FromDataset runs the pipeline over an already loaded dataset. It does not
// modify ds.
func FromDataset(ctx context.Context, ds source.Dataset, opts ...Option) (*Result, error) {
	o := options{policy: enrich.PolicyFail}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	dir, err := teams.NewDirectory(ds.Teams)
	if err != nil {
		metrics.RecordPipelineError("teams")
		return nil, fmt.Errorf("team reference: %w", err)
	}

	outcomes, gameRep := games.Flatten(ds.TeamGames)
	cleaned, cleanRep := plays.Clean(ds.Plays)
	enriched, enrichRep, err := enrich.Enrich(cleaned, outcomes, enrich.WithPolicy(o.policy))
	if err != nil {
		metrics.RecordPipelineError("enrich")
		return nil, fmt.Errorf("enrich plays: %w", err)
	}

	res := &Result{
		Teams:       dir,
		Outcomes:    outcomes,
		Plays:       enriched,
		Fingerprint: Fingerprint(ds),
		Report: Report{
			Games:    gameRep,
			Clean:    cleanRep,
			Enrich:   enrichRep,
			Duration: time.Since(start),
		},
	}
	record(ctx, o.log, res.Report)
	return res, nil
}

func record(ctx context.Context, log logger.Logger, rep Report) {
	metrics.RecordPipelineBuild(float64(rep.Duration.Microseconds()) / 1000)
	metrics.RecordDroppedRows("administrative", rep.Clean.Administrative)
	metrics.RecordDroppedRows("duplicate", rep.Clean.Duplicates)
	metrics.RecordDroppedRows("malformed", rep.Enrich.Skipped)
	metrics.RecordDroppedRows("orphan_away", rep.Games.OrphanAway)
	metrics.UpdateEnrichedRows(rep.Enrich.Output)

	if log == nil {
		return
	}
	if rep.Games.OrphanAway > 0 || rep.Games.DuplicateHome > 0 || rep.Games.DuplicateAway > 0 || rep.Games.UnknownTag > 0 {
		log.Warn(ctx, "game rows could not be paired",
			logger.Int("orphanAway", rep.Games.OrphanAway),
			logger.Int("duplicateHome", rep.Games.DuplicateHome),
			logger.Int("duplicateAway", rep.Games.DuplicateAway),
			logger.Int("unknownTag", rep.Games.UnknownTag),
		)
	}
	if rep.Enrich.Skipped > 0 {
		log.Warn(ctx, "skipped malformed plays", logger.Int("skipped", rep.Enrich.Skipped))
	}
	log.Info(ctx, "play table built",
		logger.Int("rawPlays", rep.Clean.Input),
		logger.Int("enrichedPlays", rep.Enrich.Output),
		logger.Int("games", rep.Games.HomeRows-rep.Games.DuplicateHome),
		logger.Int("missingGame", rep.Enrich.MissingGame),
		logger.Int("missingAway", rep.Games.MissingAway),
		logger.Any("duration", rep.Duration),
	)
}
