// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/pkg/metrics"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status      string `json:"status"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Version     uint64 `json:"version,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// HandleHealth handles GET /healthz requests. It reports 503 until the first
// play table is published.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Fingerprint: types.FormatFingerprint(snap.Fingerprint()),
		Version:     snap.Version,
		PublishedAt: snap.PublishedAt.UTC().Format(time.RFC3339),
	})
}

// MetricsHandler serves the custom metrics registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
