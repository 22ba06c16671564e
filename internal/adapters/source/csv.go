package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/playcall/internal/domain/model"
)

// Default file names inside the data directory.
const (
	DefaultTeamsFile = "nflTeamData.csv"
	DefaultGamesFile = "nflTeamGames.csv"
	DefaultPlaysFile = "nflPlays.csv"
)

// CSVLoader reads the raw tables from CSV files with a header row. Column
// lookup is by case-insensitive header name, so column order is free.
type CSVLoader struct {
	teamsPath string
	gamesPath string
	playsPath string
}

// CSVOption applies a configuration option to the CSVLoader.
type CSVOption func(*CSVLoader)

// WithTeamsFile overrides the team table file name.
func WithTeamsFile(name string) CSVOption {
	return func(l *CSVLoader) {
		if name != "" {
			l.teamsPath = name
		}
	}
}

// WithGamesFile overrides the per-team-per-game table file name.
func WithGamesFile(name string) CSVOption {
	return func(l *CSVLoader) {
		if name != "" {
			l.gamesPath = name
		}
	}
}

// WithPlaysFile overrides the play table file name.
func WithPlaysFile(name string) CSVOption {
	return func(l *CSVLoader) {
		if name != "" {
			l.playsPath = name
		}
	}
}

// NewCSVLoader creates a loader for files in dir. Relative file names given
// through options are resolved against dir.
func NewCSVLoader(dir string, opts ...CSVOption) *CSVLoader {
	l := &CSVLoader{
		teamsPath: DefaultTeamsFile,
		gamesPath: DefaultGamesFile,
		playsPath: DefaultPlaysFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, p := range []*string{&l.teamsPath, &l.gamesPath, &l.playsPath} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return l
}

// LoadTeams reads columns id, display_name, abbreviation, default_logo.
func (l *CSVLoader) LoadTeams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	err := readCSV(ctx, l.teamsPath, []string{"id", "display_name", "abbreviation", "default_logo"}, func(r row) error {
		id, err := r.integer("id")
		if err != nil {
			return err
		}
		out = append(out, model.Team{
			ID:           id,
			DisplayName:  r.text("display_name"),
			Abbreviation: r.text("abbreviation"),
			Logo:         r.text("default_logo"),
		})
		return nil
	})
	return out, err
}

// LoadTeamGames reads columns game_id, team_id, home_away, score, winner,
// record and the optional abbreviation.
func (l *CSVLoader) LoadTeamGames(ctx context.Context) ([]model.TeamGameResult, error) {
	var out []model.TeamGameResult
	err := readCSV(ctx, l.gamesPath, []string{"game_id", "team_id", "home_away", "score", "winner", "record"}, func(r row) error {
		var (
			g   = model.TeamGameResult{HomeAway: r.text("home_away"), Record: r.text("record"), Abbreviation: r.text("abbreviation")}
			err error
		)
		if g.GameID, err = r.integer("game_id"); err != nil {
			return err
		}
		if g.TeamID, err = r.integer("team_id"); err != nil {
			return err
		}
		if g.Score, err = r.integerOr("score", 0); err != nil {
			return err
		}
		if g.Winner, err = r.flag("winner"); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

// LoadPlays reads columns game_id, team_id, period, clock, start_yard_line,
// down, distance, yards, scoring_play, type_id, text.
func (l *CSVLoader) LoadPlays(ctx context.Context) ([]model.PlayRecord, error) {
	required := []string{"game_id", "team_id", "period", "clock", "start_yard_line", "down", "distance", "yards", "scoring_play", "type_id", "text"}
	var out []model.PlayRecord
	err := readCSV(ctx, l.playsPath, required, func(r row) error {
		p, err := playFromRow(r)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func playFromRow(r row) (model.PlayRecord, error) {
	var (
		p   = model.PlayRecord{Clock: r.text("clock"), Text: r.text("text")}
		err error
	)
	if p.GameID, err = r.integer("game_id"); err != nil {
		return p, err
	}
	if p.TeamID, err = r.integer("team_id"); err != nil {
		return p, err
	}
	if p.Period, err = r.integer("period"); err != nil {
		return p, err
	}
	if p.FieldPosition, err = r.integerOr("start_yard_line", 0); err != nil {
		return p, err
	}
	if p.Down, err = r.integerOr("down", 0); err != nil {
		return p, err
	}
	if p.Distance, err = r.integerOr("distance", 0); err != nil {
		return p, err
	}
	if p.Yards, err = r.integerOr("yards", 0); err != nil {
		return p, err
	}
	if p.Scoring, err = r.flag("scoring_play"); err != nil {
		return p, err
	}
	if p.PlayTypeID, err = r.integer("type_id"); err != nil {
		return p, err
	}
	return p, nil
}

// row gives named access to one CSV record.
type row struct {
	line int
	rec  []string
	cols map[string]int
}

func (r row) text(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) integer(name string) (int, error) {
	v := r.text(name)
	n, err := parseInt(v)
	if err != nil {
		return 0, fmt.Errorf("%w: record %d column %s: %q", ErrBadValue, r.line, name, v)
	}
	return n, nil
}

func (r row) integerOr(name string, def int) (int, error) {
	if r.text(name) == "" {
		return def, nil
	}
	return r.integer(name)
}

func (r row) flag(name string) (bool, error) {
	v := r.text(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: record %d column %s: %q", ErrBadValue, r.line, name, v)
	}
	return b, nil
}

// parseInt accepts integers written as floats ("12.0"), as spreadsheet
// exports often do.
func parseInt(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.New("not an integer")
	}
	return int(f), nil
}

func readCSV(ctx context.Context, path string, required []string, fn func(row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	if err := scanCSV(ctx, f, required, fn); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, filepath.Base(path), err)
	}
	return nil
}

func scanCSV(ctx context.Context, src io.Reader, required []string, fn func(row) error) error {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	hdr, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(hdr))
	for i, h := range hdr {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record %d: %w", line, err)
		}
		if err := fn(row{line: line, rec: rec, cols: cols}); err != nil {
			return err
		}
	}
}
