package api

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/types"
)

// PlaysHandler serves filtered plays and scenario summaries.
type PlaysHandler struct {
	deps         Dependencies
	refreshLimit *rate.Limiter
}

// NewPlaysHandler creates a new plays handler.
func NewPlaysHandler(deps Dependencies) *PlaysHandler {
	return &PlaysHandler{deps: deps}
}

type playsResponse struct {
	Fingerprint string               `json:"fingerprint"`
	Count       int                  `json:"count"`
	Plays       []model.EnrichedPlay `json:"plays"`
}

// criteria resolves the request's filter over the current snapshot.
func (h *PlaysHandler) criteria(r *http.Request) (filter.Criteria, uint64, error) {
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		return filter.Criteria{}, 0, err
	}
	base := filter.AllInclusive(snap.Result.Plays)
	c, err := parseCriteria(r.Context(), r.URL.Query(), base, h.teamID)
	return c, snap.Fingerprint(), err
}

func (h *PlaysHandler) teamID(ctx context.Context, name string) (int, error) {
	t, err := h.deps.TeamByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// HandlePlays handles GET /api/plays.
func (h *PlaysHandler) HandlePlays(w http.ResponseWriter, r *http.Request) {
	c, fp, err := h.criteria(r)
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	rows, err := h.deps.Plays(r.Context(), c)
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playsResponse{
		Fingerprint: types.FormatFingerprint(fp),
		Count:       len(rows),
		Plays:       rows,
	})
}

// HandleSummary handles GET /api/summary.
func (h *PlaysHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query(), h.deps.KeyPlayLimit())
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	c, _, err := h.criteria(r)
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	sum, err := h.deps.Summary(r.Context(), c, limit)
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// HandleOptions handles GET /api/options.
func (h *PlaysHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Options(r.Context()))
}

// HandleRefresh handles POST /api/refresh.
func (h *PlaysHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.refreshLimit != nil && !h.refreshLimit.Allow() {
		writeError(w, r, http.StatusTooManyRequests, "rate_limited", ErrRateLimited)
		return
	}
	res, err := h.deps.Refresh(r.Context())
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
