package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wanderlist/internal/match"
	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
)

// DedupeHandler runs the duplicate check for a posted candidate
// without writing anything.
type DedupeHandler struct {
	Repo repo.PlacesRepository
}

// CheckRequest is a candidate place to score against the collection.
type CheckRequest struct {
	Name    string   `json:"name"`
	URL     string   `json:"url,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Address string   `json:"address,omitempty"`
}

// CheckDuplicates scores the candidate and returns ranked matches.
func (h *DedupeHandler) CheckDuplicates(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	candidate := place.Place{Name: req.Name, URL: req.URL}
	if req.Lat != nil && req.Lon != nil {
		candidate.Location = &place.Location{Lat: *req.Lat, Lon: *req.Lon, Address: req.Address}
	} else if req.Address != "" {
		candidate.Location = &place.Location{Address: req.Address}
	}

	matcher := match.NewMatcher(h.Repo)
	matches, err := matcher.FindMatches(r.Context(), candidate)
	if err != nil {
		http.Error(w, "failed to check duplicates", http.StatusBadGateway)
		return
	}

	writeJSON(w, map[string]interface{}{
		"candidate": candidate,
		"count":     len(matches),
		"matches":   matches,
	})
}
