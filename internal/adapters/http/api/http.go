// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/okian/playcall/internal/adapters/repository"
	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Snapshot returns the current play table.
	Snapshot(ctx context.Context) (repository.Snapshot, error)

	Teams(ctx context.Context) ([]model.Team, error)
	Team(ctx context.Context, id int) (model.Team, error)
	TeamByName(ctx context.Context, name string) (model.Team, error)

	Plays(ctx context.Context, c filter.Criteria) ([]model.EnrichedPlay, error)
	Summary(ctx context.Context, c filter.Criteria, limit int) (types.Summary, error)
	KeyPlayLimit() int
	Options(ctx context.Context) types.Options

	// Refresh reloads the raw tables now.
	Refresh(ctx context.Context) (types.RefreshResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	teamsHandler  *TeamsHandler
	playsHandler  *PlaysHandler
	log           logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithRefreshLimit allows one POST /api/refresh per every. Zero or less
// leaves refreshes unlimited.
func WithRefreshLimit(every time.Duration) ServerOption {
	return func(s *Server) {
		if every > 0 {
			s.playsHandler.refreshLimit = rate.NewLimiter(rate.Every(every), 1)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		teamsHandler:  NewTeamsHandler(deps),
		playsHandler:  NewPlaysHandler(deps),
		log:           log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	r.Use(RequestIDMiddleware)
	if s.log != nil {
		r.Use(LoggingMiddleware(s.log))
	}

	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.Handle("/metrics", MetricsHandler()).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	a := r.PathPrefix("/api").Subrouter()
	a.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleList, "teams")).Methods(http.MethodGet)
	a.HandleFunc("/teams/{teamID}", MetricsMiddleware(s.teamsHandler.HandleGet, "team")).Methods(http.MethodGet)
	a.HandleFunc("/options", MetricsMiddleware(s.playsHandler.HandleOptions, "options")).Methods(http.MethodGet)
	a.HandleFunc("/plays", MetricsMiddleware(s.playsHandler.HandlePlays, "plays")).Methods(http.MethodGet)
	a.HandleFunc("/summary", MetricsMiddleware(s.playsHandler.HandleSummary, "summary")).Methods(http.MethodGet)
	a.HandleFunc("/refresh", MetricsMiddleware(s.playsHandler.HandleRefresh, "refresh")).Methods(http.MethodPost)
}

// Router builds a router with every route registered.
func (s *Server) Router(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFromContext(r.Context())})
}

// writeDepError maps a dependency error to its HTTP status.
func writeDepError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, r, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrNotFound), errors.Is(err, types.ErrUnknownTeam):
		writeError(w, r, http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrNotReady):
		writeError(w, r, http.StatusServiceUnavailable, "not_ready", err)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal", err)
	}
}
