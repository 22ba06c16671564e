package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	_ "github.com/lib/pq"             // registers the "postgres" driver

	"github.com/okian/playcall/internal/domain/model"
)

// Supported source kinds.
const (
	KindCSV      = "csv"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Queries against the raw tables. Ordering fixes the row order the
// pipeline's stable stages rely on.
const (
	teamsQuery     = `SELECT id, display_name, abbreviation, logo FROM teams ORDER BY id`
	teamGamesQuery = `SELECT game_id, team_id, home_away, score, winner, record, abbreviation FROM team_games ORDER BY game_id, home_away DESC, team_id`
	playsQuery     = `SELECT game_id, team_id, period, clock, start_yard_line, down, distance, yards, scoring_play, type_id, text FROM plays ORDER BY game_id, sequence`
)

// Connection pool settings.
const (
	maxOpenConns    = 4
	maxIdleConns    = 2
	connMaxLifetime = time.Hour
)

// SQLLoader reads the raw tables from a SQLite or PostgreSQL database.
type SQLLoader struct {
	db *sql.DB
}

// OpenSQL opens driver ("sqlite" or "postgres") at dsn and verifies the
// connection.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLLoader, error) {
	if driver != KindSQLite && driver != KindPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLoad, driver, err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrLoad, driver, err)
	}
	return &SQLLoader{db: db}, nil
}

// NewSQLLoader wraps an already open database.
func NewSQLLoader(db *sql.DB) *SQLLoader {
	return &SQLLoader{db: db}
}

// DB returns the underlying database handle.
func (l *SQLLoader) DB() *sql.DB { return l.db }

// Close closes the database.
func (l *SQLLoader) Close() error { return l.db.Close() }

// LoadTeams implements Loader.
func (l *SQLLoader) LoadTeams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	err := l.query(ctx, "teams", teamsQuery, func(rows *sql.Rows) error {
		var (
			t    model.Team
			logo sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.DisplayName, &t.Abbreviation, &logo); err != nil {
			return err
		}
		t.Logo = logo.String
		out = append(out, t)
		return nil
	})
	return out, err
}

// LoadTeamGames implements Loader.
func (l *SQLLoader) LoadTeamGames(ctx context.Context) ([]model.TeamGameResult, error) {
	var out []model.TeamGameResult
	err := l.query(ctx, "team_games", teamGamesQuery, func(rows *sql.Rows) error {
		var (
			g            model.TeamGameResult
			score        sql.NullInt64
			record, abbr sql.NullString
		)
		if err := rows.Scan(&g.GameID, &g.TeamID, &g.HomeAway, &score, &g.Winner, &record, &abbr); err != nil {
			return err
		}
		g.Score = int(score.Int64)
		g.Record = record.String
		g.Abbreviation = abbr.String
		out = append(out, g)
		return nil
	})
	return out, err
}

// LoadPlays implements Loader.
func (l *SQLLoader) LoadPlays(ctx context.Context) ([]model.PlayRecord, error) {
	var out []model.PlayRecord
	err := l.query(ctx, "plays", playsQuery, func(rows *sql.Rows) error {
		var (
			p                      model.PlayRecord
			pos, down, dist, yards sql.NullInt64
			text                   sql.NullString
		)
		if err := rows.Scan(&p.GameID, &p.TeamID, &p.Period, &p.Clock, &pos, &down, &dist, &yards, &p.Scoring, &p.PlayTypeID, &text); err != nil {
			return err
		}
		p.FieldPosition = int(pos.Int64)
		p.Down = int(down.Int64)
		p.Distance = int(dist.Int64)
		p.Yards = int(yards.Int64)
		p.Text = text.String
		out = append(out, p)
		return nil
	})
	return out, err
}

func (l *SQLLoader) query(ctx context.Context, table, q string, scan func(*sql.Rows) error) error {
	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("%w: query %s: %w", ErrLoad, table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: scan %s: %w", ErrLoad, table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterate %s: %w", ErrLoad, table, err)
	}
	return nil
}

// Schema creates the raw tables. It is portable between SQLite and
// PostgreSQL and is used to seed databases in tests and tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS teams (
	id INTEGER PRIMARY KEY,
	display_name TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	logo TEXT
);
CREATE TABLE IF NOT EXISTS team_games (
	game_id INTEGER NOT NULL,
	team_id INTEGER NOT NULL,
	home_away TEXT NOT NULL,
	score INTEGER,
	winner BOOLEAN NOT NULL DEFAULT FALSE,
	record TEXT,
	abbreviation TEXT
);
CREATE TABLE IF NOT EXISTS plays (
	game_id INTEGER NOT NULL,
	sequence INTEGER NOT NULL,
	team_id INTEGER NOT NULL,
	period INTEGER NOT NULL,
	clock TEXT NOT NULL,
	start_yard_line INTEGER,
	down INTEGER,
	distance INTEGER,
	yards INTEGER,
	scoring_play BOOLEAN NOT NULL DEFAULT FALSE,
	type_id INTEGER NOT NULL,
	text TEXT
);
`
