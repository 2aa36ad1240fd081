package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wanderlist/internal/match"
	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
)

// PlacesHandler serves read endpoints over the places repository.
type PlacesHandler struct {
	Repo repo.PlacesRepository
}

// ListPlaces returns the full snapshot, optionally filtered by
// category, status or source query parameters.
func (h *PlacesHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.Repo.ListAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list places", http.StatusBadGateway)
		return
	}

	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")
	source := r.URL.Query().Get("source")

	var filtered []place.Place
	for _, p := range places {
		if category != "" && string(p.Category) != category {
			continue
		}
		if status != "" && string(p.Status) != status {
			continue
		}
		if source != "" && !p.HasSource(source) {
			continue
		}
		filtered = append(filtered, p)
	}

	writeJSON(w, map[string]interface{}{
		"count":  len(filtered),
		"places": filtered,
	})
}

// GetPlace returns one place by ID.
func (h *PlacesHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	places, err := h.Repo.ListAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list places", http.StatusBadGateway)
		return
	}

	for _, p := range places {
		if p.ID == id {
			writeJSON(w, p)
			return
		}
	}

	http.Error(w, "place not found", http.StatusNotFound)
}

// SearchPlaces returns places whose name scores above the name
// similarity floor against the q parameter, best first.
func (h *PlacesHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	places, err := h.Repo.ListAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list places", http.StatusBadGateway)
		return
	}

	type hit struct {
		Place      place.Place `json:"place"`
		Similarity float64     `json:"similarity"`
	}

	var hits []hit
	for _, p := range places {
		sim := match.TextSimilarity(query, p.Name)
		if sim > 0.5 || strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			hits = append(hits, hit{Place: p, Similarity: sim})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	writeJSON(w, map[string]interface{}{
		"query":   query,
		"count":   len(hits),
		"results": hits,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}
