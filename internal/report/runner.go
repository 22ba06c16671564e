package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/okian/playcall/internal/adapters/source"
	app "github.com/okian/playcall/internal/app"
	"github.com/okian/playcall/internal/config"
	"github.com/okian/playcall/internal/domain/enrich"
	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/teams"
	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/internal/pipeline"
	"github.com/okian/playcall/pkg/logger"
)

var (
	// ErrNoTeam is returned when no team was selected.
	ErrNoTeam = errors.New("a team is required")
	// ErrBadSelector wraps selector parse failures.
	ErrBadSelector = errors.New("invalid selection")
)

// Result is one rendered report.
type Result struct {
	Team    model.Team    `json:"team"`
	Summary types.Summary `json:"summary"`
}

// Run loads the configured tables, builds the play table and writes the
// report for cfg's scenario.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Team == "" {
		return ErrNoTeam
	}
	log := logger.Get()

	// 1. Load configuration
	svcCfg, err := loadConfig(ctx, cfg.ConfigFile)
	if err != nil {
		return err
	}
	policy, err := enrich.ParsePolicy(svcCfg.MalformedPolicy)
	if err != nil {
		return err
	}

	// 2. Build the play table
	loader, err := app.OpenLoader(ctx, svcCfg)
	if err != nil {
		return err
	}
	if c, ok := loader.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	res, err := pipeline.Build(ctx, loader, pipeline.WithPolicy(policy), pipeline.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build play table: %w", err)
	}
	log.Debug(ctx, "play table built", logger.Int("plays", len(res.Plays)))

	// 3. Summarize and render
	out, err := Build(res, cfg)
	if err != nil {
		return err
	}
	w := cfg.Out
	if w == nil {
		w = os.Stdout
	}
	if cfg.JSON {
		return WriteJSON(w, out)
	}
	return WriteText(w, out)
}

// RunDataset is Run over an in-memory dataset, without rendering.
func RunDataset(ctx context.Context, ds source.Dataset, cfg *Config) (Result, error) {
	if cfg.Team == "" {
		return Result{}, ErrNoTeam
	}
	res, err := pipeline.FromDataset(ctx, ds)
	if err != nil {
		return Result{}, err
	}
	return Build(res, cfg)
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.Load(ctx)
	}
	return config.LoadFile(ctx, path)
}

// Build resolves cfg's scenario against res and summarizes it.
func Build(res *pipeline.Result, cfg *Config) (Result, error) {
	team, err := resolveTeam(res.Teams, cfg.Team)
	if err != nil {
		return Result{}, err
	}
	c, err := Criteria(team.ID, cfg)
	if err != nil {
		return Result{}, err
	}
	rows := filter.Apply(res.Plays, c)
	return Result{Team: team, Summary: types.NewSummary(res.Fingerprint, rows, cfg.Limit)}, nil
}

func resolveTeam(dir *teams.Directory, name string) (model.Team, error) {
	if id, err := strconv.Atoi(name); err == nil {
		t, err := dir.Lookup(id)
		if err != nil {
			return model.Team{}, fmt.Errorf("%w: %d", types.ErrUnknownTeam, id)
		}
		return t, nil
	}
	t, err := dir.ByDisplayName(name)
	if err != nil {
		return model.Team{}, fmt.Errorf("%w: %q", types.ErrUnknownTeam, name)
	}
	return t, nil
}

// Criteria starts from the dashboard defaults for team and applies every
// non-empty selector of cfg.
func Criteria(team int, cfg *Config) (filter.Criteria, error) {
	c := filter.DashboardDefaults(team)
	var err error
	if cfg.Home != "" {
		if c.HomeAway, err = filter.ParseSettings(cfg.Home); err != nil {
			return filter.Criteria{}, fmt.Errorf("%w: -home: %w", ErrBadSelector, err)
		}
	}
	for _, sel := range []struct {
		flag string
		raw  string
		dst  *filter.Set[int]
	}{
		{"time", cfg.Time, &c.TimeBuckets},
		{"margin", cfg.Margin, &c.MarginBuckets},
		{"status", cfg.Status, &c.ScoreStatuses},
		{"down", cfg.Down, &c.Downs},
		{"distance", cfg.Distance, &c.Distances},
	} {
		if sel.raw == "" {
			continue
		}
		if *sel.dst, err = filter.ParseInts(sel.raw); err != nil {
			return filter.Criteria{}, fmt.Errorf("%w: -%s: %w", ErrBadSelector, sel.flag, err)
		}
	}
	if cfg.Yards != "" {
		if c.FieldPositions, err = filter.ParseYards(cfg.Yards); err != nil {
			return filter.Criteria{}, fmt.Errorf("%w: -yards: %w", ErrBadSelector, err)
		}
	}
	return c, nil
}
