package api

import (
	"net/http"
)

// StatsProvider defines the interface for getting service statistics and
// readiness.
type StatsProvider interface {
	GetStats() map[string]interface{}
	Started() bool
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
