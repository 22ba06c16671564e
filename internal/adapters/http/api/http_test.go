package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/playcall/internal/adapters/http/api"
	"github.com/okian/playcall/internal/adapters/repository"
	"github.com/okian/playcall/internal/adapters/source"
	app "github.com/okian/playcall/internal/app"
	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/playtype"
	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/pkg/logger"
)

func dataset() source.Dataset {
	return source.Dataset{
		Teams: []model.Team{
			{ID: 12, DisplayName: "Kansas City Chiefs", Abbreviation: "KC"},
			{ID: 2, DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
		},
		TeamGames: []model.TeamGameResult{
			{GameID: 401, TeamID: 12, HomeAway: model.TagHome, Score: 27, Winner: true},
			{GameID: 401, TeamID: 2, HomeAway: model.TagAway, Score: 20},
		},
		Plays: []model.PlayRecord{
			{GameID: 401, TeamID: 12, Period: 1, Clock: "14:10", FieldPosition: -25, Down: 1, Distance: 10, Yards: 7, PlayTypeID: playtype.Rush, Text: "Pacheco up the middle"},
			{GameID: 401, TeamID: 12, Period: 3, Clock: "13:30", FieldPosition: -32, Down: 3, Distance: 3, Yards: 34, PlayTypeID: playtype.PassReception, Text: "Mahomes deep to Rice"},
			{GameID: 401, TeamID: 12, Period: 4, Clock: "01:50", FieldPosition: 10, Down: 1, Distance: 10, Yards: 10, Scoring: true, PlayTypeID: playtype.PassingTouchdown, Text: "Touchdown Kelce"},
			{GameID: 401, TeamID: 2, Period: 2, Clock: "05:40", FieldPosition: -20, Down: 3, Distance: 6, Yards: -8, PlayTypeID: playtype.Sack, Text: "Allen sacked"},
		},
	}
}

func newRouter() http.Handler {
	_ = logger.Init(logger.WithOutput(io.Discard))
	svc := app.New(app.WithLoader(source.Static(dataset())))
	So(svc.Start(context.Background()), ShouldBeNil)
	return api.NewServer(svc, svc, logger.Get()).Router(context.Background())
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder, v any) {
	So(json.Unmarshal(w.Body.Bytes(), v), ShouldBeNil)
}

type playsBody struct {
	Count int                  `json:"count"`
	Plays []model.EnrichedPlay `json:"plays"`
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		h := newRouter()

		Convey("When checking health", func() {
			w := get(h, "/healthz")

			Convey("Then it reports ok with the fingerprint and a request id", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]any
				decode(w, &body)
				So(body["status"], ShouldEqual, "ok")
				So(len(body["fingerprint"].(string)), ShouldEqual, 16)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When a client sends its own request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When reading stats and metrics", func() {
			stats := get(h, "/stats")
			m := get(h, "/metrics")

			Convey("Then both are served", func() {
				So(stats.Code, ShouldEqual, http.StatusOK)
				var body map[string]any
				decode(stats, &body)
				So(body["plays"], ShouldEqual, float64(4))
				So(m.Code, ShouldEqual, http.StatusOK)
				So(m.Body.String(), ShouldContainSubstring, "playcall_profiler_")
			})
		})
	})
}

func TestTeamsRoutes(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		h := newRouter()

		Convey("Then the team list is served", func() {
			w := get(h, "/api/teams")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Count int          `json:"count"`
				Teams []model.Team `json:"teams"`
			}
			decode(w, &body)
			So(body.Count, ShouldEqual, 2)
		})

		Convey("Then a known team is found", func() {
			w := get(h, "/api/teams/12")
			So(w.Code, ShouldEqual, http.StatusOK)
			var team model.Team
			decode(w, &team)
			So(team.DisplayName, ShouldEqual, "Kansas City Chiefs")
		})

		Convey("Then an unknown team is 404 and a bad id is 400", func() {
			So(get(h, "/api/teams/99").Code, ShouldEqual, http.StatusNotFound)
			So(get(h, "/api/teams/abc").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestPlaysRoutes(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		h := newRouter()

		Convey("When no filter is given", func() {
			w := get(h, "/api/plays")

			Convey("Then every play is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body playsBody
				decode(w, &body)
				So(body.Count, ShouldEqual, 4)
			})
		})

		Convey("When filtering by team name, setting and down", func() {
			w := get(h, "/api/plays?team=Kansas+City+Chiefs&home=home&down=1")

			Convey("Then only matching plays are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body playsBody
				decode(w, &body)
				So(body.Count, ShouldEqual, 2)
				for _, p := range body.Plays {
					So(p.TeamID, ShouldEqual, 12)
					So(p.Down, ShouldEqual, 1)
				}
			})
		})

		Convey("When filtering with ranges and repeated parameters", func() {
			w := get(h, "/api/plays?distance=1-6&down=3&down=4")

			Convey("Then lists and ranges are combined", func() {
				var body playsBody
				decode(w, &body)
				So(body.Count, ShouldEqual, 2)
			})
		})

		Convey("When a parameter is present but empty", func() {
			w := get(h, "/api/plays?time=")

			Convey("Then nothing matches", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body playsBody
				decode(w, &body)
				So(body.Count, ShouldEqual, 0)
				So(body.Plays, ShouldBeEmpty)
			})
		})

		Convey("When a yard slider range is given", func() {
			w := get(h, "/api/plays?yards=-25,25")

			Convey("Then plays inside the slider window are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body playsBody
				decode(w, &body)
				for _, p := range body.Plays {
					So(filter.YardRange(-25, 25).Has(p.NormalizedFieldPosition), ShouldBeTrue)
				}
			})
		})

		Convey("When parameters are malformed", func() {
			Convey("Then the request is rejected", func() {
				So(get(h, "/api/plays?down=first").Code, ShouldEqual, http.StatusBadRequest)
				So(get(h, "/api/plays?home=maybe").Code, ShouldEqual, http.StatusBadRequest)
				So(get(h, "/api/plays?distance=0-50000").Code, ShouldEqual, http.StatusBadRequest)
				So(get(h, "/api/plays?yards=10").Code, ShouldEqual, http.StatusBadRequest)
				So(get(h, "/api/plays?yards=-10,10&position=20").Code, ShouldEqual, http.StatusBadRequest)
				So(get(h, "/api/summary?limit=-1").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an unknown team name is given", func() {
			Convey("Then it is not found", func() {
				So(get(h, "/api/plays?team=Nowhere+Nomads").Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSummaryRoute(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		h := newRouter()

		Convey("When asking for one team's summary", func() {
			w := get(h, "/api/summary?team=12&limit=2")

			Convey("Then KPIs, breakdown and key plays are reported", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var sum types.Summary
				decode(w, &sum)
				So(sum.Matched, ShouldEqual, 3)
				So(sum.KPIs.ScoringPlays, ShouldEqual, 1)
				So(sum.KPIs.ExplosivePlays, ShouldEqual, 1)
				So(sum.Breakdown.Total, ShouldEqual, 3)
				So(sum.KeyPlays, ShouldResemble, []string{"Touchdown Kelce", "Mahomes deep to Rice"})
			})
		})

		Convey("When the limit is zero", func() {
			w := get(h, "/api/summary?limit=0")

			Convey("Then no key plays are listed", func() {
				var sum types.Summary
				decode(w, &sum)
				So(sum.KeyPlays, ShouldBeEmpty)
				So(sum.Matched, ShouldEqual, 4)
			})
		})

		Convey("When listing options and refreshing", func() {
			opts := get(h, "/api/options")
			req := httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(""))
			refresh := httptest.NewRecorder()
			h.ServeHTTP(refresh, req)

			Convey("Then both succeed", func() {
				So(opts.Code, ShouldEqual, http.StatusOK)
				var o types.Options
				decode(opts, &o)
				So(len(o.TimeBuckets), ShouldEqual, 5)
				So(refresh.Code, ShouldEqual, http.StatusOK)
				var res types.RefreshResult
				decode(refresh, &res)
				So(res.Changed, ShouldBeFalse)
			})
		})

		Convey("When refresh is called with GET", func() {
			Convey("Then the route does not accept it", func() {
				So(get(h, "/api/refresh").Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

// failingDeps fails every call with err.
type failingDeps struct{ err error }

func (f failingDeps) Snapshot(context.Context) (repository.Snapshot, error) {
	return repository.Snapshot{}, f.err
}
func (f failingDeps) Teams(context.Context) ([]model.Team, error) { return nil, f.err }
func (f failingDeps) Team(context.Context, int) (model.Team, error) { return model.Team{}, f.err }
func (f failingDeps) TeamByName(context.Context, string) (model.Team, error) {
	return model.Team{}, f.err
}
func (f failingDeps) Plays(context.Context, filter.Criteria) ([]model.EnrichedPlay, error) {
	return nil, f.err
}
func (f failingDeps) Summary(context.Context, filter.Criteria, int) (types.Summary, error) {
	return types.Summary{}, f.err
}
func (f failingDeps) KeyPlayLimit() int { return 5 }
func (f failingDeps) Options(context.Context) types.Options { return types.DashboardOptions() }
func (f failingDeps) Refresh(context.Context) (types.RefreshResult, error) {
	return types.RefreshResult{}, f.err
}
func (f failingDeps) GetStats() map[string]interface{} { return map[string]interface{}{} }

func TestErrorMapping(t *testing.T) {
	Convey("Given dependencies that fail", t, func() {
		newHandler := func(err error) http.Handler {
			deps := failingDeps{err: err}
			return api.NewServer(deps, deps, nil).Router(context.Background())
		}

		Convey("When the table is not built yet", func() {
			h := newHandler(types.ErrNotReady)

			Convey("Then health and queries report unavailable", func() {
				So(get(h, "/healthz").Code, ShouldEqual, http.StatusServiceUnavailable)
				So(get(h, "/api/plays").Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When an unexpected error occurs", func() {
			h := newHandler(errors.New("disk on fire"))
			w := get(h, "/api/teams")

			Convey("Then it is an internal error carrying the request id", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body map[string]string
				decode(w, &body)
				So(body["code"], ShouldEqual, "internal")
				So(body["request_id"], ShouldEqual, w.Header().Get(api.RequestIDHeader))
			})
		})

		Convey("When a refresh fails to load", func() {
			h := newHandler(source.ErrLoad)
			req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestRefreshLimit(t *testing.T) {
	Convey("Given a server allowing one refresh per minute", t, func() {
		_ = logger.Init(logger.WithOutput(io.Discard))
		svc := app.New(app.WithLoader(source.Static(dataset())))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := api.NewServer(svc, svc, logger.Get(), api.WithRefreshLimit(time.Minute)).Router(context.Background())

		post := func() *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
			return w
		}

		Convey("When refreshing twice in a row", func() {
			first, second := post(), post()

			Convey("Then the second call is rejected", func() {
				So(first.Code, ShouldEqual, http.StatusOK)
				So(second.Code, ShouldEqual, http.StatusTooManyRequests)
				var body map[string]string
				decode(second, &body)
				So(body["code"], ShouldEqual, "rate_limited")
			})
		})
	})
}
