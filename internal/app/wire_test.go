package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/playcall/internal/adapters/cache"
	app "github.com/okian/playcall/internal/app"
	"github.com/okian/playcall/internal/config"
	"github.com/okian/playcall/pkg/logger"
)

const (
	teamsCSV = "id,display_name,abbreviation,default_logo\n12,Kansas City Chiefs,KC,kc.png\n2,Buffalo Bills,BUF,buf.png\n"
	gamesCSV = "game_id,team_id,home_away,score,winner,record\n401,12,home,27,true,11-6\n401,2,away,24,false,11-6\n"
	playsCSV = "game_id,team_id,period,clock,start_yard_line,down,distance,yards,scoring_play,type_id,text\n" +
		"401,12,1,14:10,-25,1,10,7,false,5,Pacheco up the middle\n" +
		"401,2,2,01:40,-20,3,6,-8,false,7,Allen sacked\n"
)

func writeCSVs(dir string) {
	for name, body := range map[string]string{
		"nflTeamData.csv":  teamsCSV,
		"nflTeamGames.csv": gamesCSV,
		"nflPlays.csv":     playsCSV,
	} {
		So(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600), ShouldBeNil)
	}
}

func TestFromConfig(t *testing.T) {
	initLogger()

	Convey("Given a config pointing at CSV exports", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		writeCSVs(dir)
		cfg := config.New(ctx)
		cfg.DataDir = dir

		Convey("When building the service", func() {
			svc, closeFn, err := app.FromConfig(ctx, cfg, logger.Get())
			So(err, ShouldBeNil)
			defer func() { _ = closeFn() }()
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then it serves the exported tables", func() {
				all, err := svc.Teams(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 2)
				snap, _ := svc.Snapshot(ctx)
				So(len(snap.Result.Plays), ShouldEqual, 2)
				So(svc.KeyPlayLimit(), ShouldEqual, 5)
			})
		})

		Convey("When the policy is unknown", func() {
			cfg.MalformedPolicy = "ignore"
			_, _, err := app.FromConfig(ctx, cfg, logger.Get())

			Convey("Then the config is rejected", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When no redis url is configured", func() {
			c, err := app.OpenCache(ctx, cfg)

			Convey("Then an in-process cache is used", func() {
				So(err, ShouldBeNil)
				_, isMemory := c.(*cache.Memory)
				So(isMemory, ShouldBeTrue)
			})
		})

		Convey("When the redis url is malformed", func() {
			cfg.RedisURL = "not-a-url://"
			_, err := app.OpenCache(ctx, cfg)

			Convey("Then opening the cache fails", func() {
				So(errors.Is(err, cache.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}
