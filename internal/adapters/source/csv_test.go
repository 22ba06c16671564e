package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/playcall/internal/adapters/source"
	"github.com/okian/playcall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const teamsCSV = `id,display_name,abbreviation,default_logo,color
12,Kansas City Chiefs,KC,https://a.espncdn.com/i/teamlogos/nfl/500/kc.png,e31837
2,Buffalo Bills,BUF,https://a.espncdn.com/i/teamlogos/nfl/500/buf.png,00338d
`

const gamesCSV = `game_id,team_id,home_away,score,winner,record,abbreviation
401,12,home,27,True,1-0,KC
401,2,away,24,False,0-1,BUF
`

const playsCSV = `text,game_id,team_id,period,clock,start_yard_line,down,distance,yards,scoring_play,type_id
"Mahomes pass short right to Kelce for 12 yards",401,12,1,15:00,75,1,10,12,False,24
Pacheco up the middle for 3 yards,401,12,1,14:21,63.0,1,10,3,false,5
Timeout #1 by KC,401,12,1,14:00,,,,,,21
`

func writeFile(dir, name, body string) {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		panic(err)
	}
}

func TestCSVLoader(t *testing.T) {
	Convey("Given CSV tables in a data directory", t, func() {
		dir := t.TempDir()
		writeFile(dir, source.DefaultTeamsFile, teamsCSV)
		writeFile(dir, source.DefaultGamesFile, gamesCSV)
		writeFile(dir, "plays_2024.csv", playsCSV)
		l := source.NewCSVLoader(dir, source.WithPlaysFile("plays_2024.csv"))
		ctx := context.Background()

		Convey("When loading teams", func() {
			teams, err := l.LoadTeams(ctx)

			Convey("Then rows come back in file order", func() {
				So(err, ShouldBeNil)
				So(teams, ShouldResemble, []model.Team{
					{ID: 12, DisplayName: "Kansas City Chiefs", Abbreviation: "KC", Logo: "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png"},
					{ID: 2, DisplayName: "Buffalo Bills", Abbreviation: "BUF", Logo: "https://a.espncdn.com/i/teamlogos/nfl/500/buf.png"},
				})
			})
		})

		Convey("When loading team games", func() {
			rows, err := l.LoadTeamGames(ctx)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[0], ShouldResemble, model.TeamGameResult{GameID: 401, TeamID: 12, HomeAway: "home", Score: 27, Winner: true, Record: "1-0", Abbreviation: "KC"})
			So(rows[1].Winner, ShouldBeFalse)
		})

		Convey("When loading plays with reordered columns and empty cells", func() {
			rows, err := l.LoadPlays(ctx)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)

			Convey("Then values are parsed by header name", func() {
				So(rows[0].Text, ShouldEqual, "Mahomes pass short right to Kelce for 12 yards")
				So(rows[0].FieldPosition, ShouldEqual, 75)
				So(rows[0].PlayTypeID, ShouldEqual, 24)
				So(rows[1].FieldPosition, ShouldEqual, 63)
				So(rows[2].Down, ShouldEqual, 0)
				So(rows[2].Scoring, ShouldBeFalse)
			})
		})

		Convey("When loading everything at once", func() {
			ds, err := source.LoadAll(ctx, l)
			So(err, ShouldBeNil)
			So(len(ds.Teams), ShouldEqual, 2)
			So(len(ds.TeamGames), ShouldEqual, 2)
			So(len(ds.Plays), ShouldEqual, 3)
		})
	})

	Convey("Given a table missing a required column", t, func() {
		dir := t.TempDir()
		writeFile(dir, source.DefaultTeamsFile, "id,display_name\n1,A\n")
		_, err := source.NewCSVLoader(dir).LoadTeams(context.Background())

		Convey("Then the load fails naming the column", func() {
			So(errors.Is(err, source.ErrLoad), ShouldBeTrue)
			So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "abbreviation")
		})
	})

	Convey("Given a non-numeric identifier", t, func() {
		dir := t.TempDir()
		writeFile(dir, source.DefaultGamesFile, "game_id,team_id,home_away,score,winner,record\nabc,1,home,3,true,1-0\n")
		_, err := source.NewCSVLoader(dir).LoadTeamGames(context.Background())
		So(errors.Is(err, source.ErrBadValue), ShouldBeTrue)
	})

	Convey("Given a missing file", t, func() {
		_, err := source.NewCSVLoader(t.TempDir()).LoadPlays(context.Background())
		So(errors.Is(err, source.ErrLoad), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		dir := t.TempDir()
		writeFile(dir, source.DefaultTeamsFile, teamsCSV)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := source.NewCSVLoader(dir).LoadTeams(ctx)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestOpen(t *testing.T) {
	Convey("Given source settings", t, func() {
		l, err := source.Open(context.Background(), source.Settings{Kind: "CSV", DataDir: t.TempDir()})
		So(err, ShouldBeNil)
		_, ok := l.(*source.CSVLoader)
		So(ok, ShouldBeTrue)

		_, err = source.Open(context.Background(), source.Settings{Kind: "parquet"})
		So(errors.Is(err, source.ErrUnknownKind), ShouldBeTrue)
	})
}
