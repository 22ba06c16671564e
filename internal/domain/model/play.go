// Package model contains the row types passed between pipeline stages.
package model

// Team is immutable reference data for a single franchise.
type Team struct {
	ID           int    `json:"id"`
	DisplayName  string `json:"display_name"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// Home/away tags used by the per-team-per-game table.
const (
	TagHome = "home"
	TagAway = "away"
)

// TeamGameResult is one team's side of a single game as delivered by the source.
type TeamGameResult struct {
	GameID       int
	TeamID       int
	HomeAway     string
	Score        int
	Winner       bool
	Record       string
	Abbreviation string
}

// Side is a team's final line in a flattened game.
type Side struct {
	TeamID       int    `json:"team_id"`
	Score        int    `json:"score"`
	Record       string `json:"record"`
	Abbreviation string `json:"abbreviation"`
}

// GameOutcome is one row per game. Away is nil when the source has no away row.
type GameOutcome struct {
	GameID        int   `json:"game_id"`
	Home          Side  `json:"home"`
	Away          *Side `json:"away,omitempty"`
	WinningTeamID *int  `json:"winning_team_id,omitempty"`
}

// PlayRecord is a raw play. Every field is comparable so value equality
// identifies exact duplicates.
type PlayRecord struct {
	GameID        int    `json:"game_id"`
	TeamID        int    `json:"team_id"`
	Period        int    `json:"period"`
	Clock         string `json:"clock"`
	FieldPosition int    `json:"field_position"`
	Down          int    `json:"down"`
	Distance      int    `json:"distance"`
	Yards         int    `json:"yards"`
	Scoring       bool   `json:"scoring"`
	PlayTypeID    int    `json:"play_type_id"`
	Text          string `json:"text"`
}

// EnrichedPlay is a PlayRecord plus the fields derived by the enrichment stage.
// Pointer fields are nil when the play's game outcome (or the needed side)
// is missing.
type EnrichedPlay struct {
	PlayRecord

	IsHomeTeam              *bool  `json:"is_home_team"`
	ElapsedSeconds          int    `json:"elapsed_seconds"`
	TimeBucket              int    `json:"time_bucket"`
	ScoreMarginBucket       *int   `json:"score_margin_bucket"`
	ScoreStatus             *int   `json:"score_status"`
	NormalizedFieldPosition int    `json:"normalized_field_position"`
	FieldPositionZone       string `json:"field_position_zone"`
}
