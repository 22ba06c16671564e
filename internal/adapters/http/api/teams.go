package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// TeamsHandler serves the reference team table.
type TeamsHandler struct {
	deps Dependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleList handles GET /api/teams.
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.deps.Teams(r.Context())
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": all, "count": len(all)})
}

// HandleGet handles GET /api/teams/{teamID}.
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["teamID"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeDepError(w, r, fmt.Errorf("%w: team id %q is not a number", ErrBadRequest, raw))
		return
	}
	t, err := h.deps.Team(r.Context(), id)
	if err != nil {
		writeDepError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
