package api

import (
	"net/http"

	"github.com/okian/skillswap/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles liveness and readiness checks.
type HealthHandler struct {
	metrics http.Handler
	status  StatsProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(status StatsProvider) *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
		status:  status,
	}
}

// HandleHealth handles GET /healthz requests with the Prometheus exposition
// of the service registry. A successful scrape doubles as the liveness check.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

type readyResponse struct {
	Ready bool `json:"ready"`
}

// HandleReady handles GET /readyz. It answers 503 until the service accepts
// actions.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.status == nil || !h.status.Started() {
		writeError(w, http.StatusServiceUnavailable, "unavailable", nil)
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Ready: true})
}
