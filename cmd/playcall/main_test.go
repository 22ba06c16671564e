package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/playcall/internal/app"
	"github.com/okian/playcall/internal/config"
	"github.com/okian/playcall/pkg/logger"
)

func writeExports(dir string) {
	files := map[string]string{
		"nflTeamData.csv":  "id,display_name,abbreviation,default_logo\n12,Kansas City Chiefs,KC,kc.png\n",
		"nflTeamGames.csv": "game_id,team_id,home_away,score,winner,record\n401,12,home,27,true,11-6\n",
		"nflPlays.csv": "game_id,team_id,period,clock,start_yard_line,down,distance,yards,scoring_play,type_id,text\n" +
			"401,12,1,14:10,75,1,10,7,false,5,Pacheco up the middle\n",
	}
	for name, body := range files {
		convey.So(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600), convey.ShouldBeNil)
	}
}

func TestMainFunction(t *testing.T) {
	_ = logger.Init(logger.WithOutput(io.Discard))

	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PLAYCALL_ADDR", ":8080")
			_ = os.Setenv("PLAYCALL_KEY_PLAY_LIMIT", "3")
			defer func() {
				_ = os.Unsetenv("PLAYCALL_ADDR")
				_ = os.Unsetenv("PLAYCALL_KEY_PLAY_LIMIT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.KeyPlayLimit, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("PLAYCALL_ADDR", "")
			defer func() { _ = os.Unsetenv("PLAYCALL_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestRouter(t *testing.T) {
	_ = logger.Init(logger.WithOutput(io.Discard))

	convey.Convey("Given a started service over CSV exports", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		writeExports(dir)
		cfg := config.New(ctx)
		cfg.DataDir = dir

		svc, closeFn, err := app.FromConfig(ctx, cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = closeFn() }()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		router := newRouter(ctx, cfg, svc, logger.Get())

		for _, path := range []string{"/healthz", "/metrics", "/stats", "/api/teams", "/api/summary", "/openapi.yaml"} {
			convey.Convey("Then "+path+" responds", func() {
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		}
	})
}

func TestRunShutdown(t *testing.T) {
	_ = logger.Init(logger.WithOutput(io.Discard))

	convey.Convey("Given a config with a free port", t, func() {
		dir := t.TempDir()
		writeExports(dir)
		cfg := config.New(context.Background())
		cfg.DataDir = dir
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			convey.Convey("Then run returns cleanly", func() {
				convey.So(run(ctx, cfg, logger.Get()), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the source is missing", func() {
			cfg.DataDir = filepath.Join(dir, "missing")

			convey.Convey("Then run fails on the first build", func() {
				convey.So(run(context.Background(), cfg, logger.Get()), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the updater stops with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
