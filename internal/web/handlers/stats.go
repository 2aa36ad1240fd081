package handlers

import (
	"net/http"

	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
)

// StatsHandler serves collection statistics.
type StatsHandler struct {
	Repo repo.PlacesRepository
}

// StatsResponse is the JSON shape of the stats endpoint.
type StatsResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	ByStatus   map[string]int `json:"by_status"`
	BySource   map[string]int `json:"by_source"`
}

// GetStats tallies the snapshot by category, status and source.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	places, err := h.Repo.ListAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list places", http.StatusBadGateway)
		return
	}

	stats := place.ComputeStats(places)

	writeJSON(w, StatsResponse{
		Total:      stats.Total,
		ByCategory: stats.ByCategory,
		ByStatus:   stats.ByStatus,
		BySource:   stats.BySource,
	})
}
