// Package repo defines the places repository contract and its
// implementations: Notion (the system of record), Postgres (local
// mirror) and an in-memory store used by tests and dry runs.
package repo

import (
	"context"

	"github.com/wanderlist/internal/place"
)

// PlacesRepository is the single external collaborator of the matching
// core. ListAll returns a full snapshot; Create assigns the ID; Update
// applies a partial field set to an existing record.
type PlacesRepository interface {
	ListAll(ctx context.Context) ([]place.Place, error)
	Create(ctx context.Context, p place.Place) (place.Place, error)
	Update(ctx context.Context, id string, updates PlaceUpdates) (place.Place, error)
}

// PlaceUpdates is a partial place: only non-zero fields are written.
// Sources, when non-nil, replaces the stored set (callers pass the
// already-merged union).
type PlaceUpdates struct {
	Name        string
	Category    place.Category
	Location    *place.Location
	URL         string
	Sources     []string
	TempleTypes []string
	City        string
	Country     string
	Status      place.Status
}
