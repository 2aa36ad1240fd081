package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wanderlist/internal/place"
)

// MemoryRepository is an in-memory PlacesRepository. It backs dry runs
// and tests; records live only for the process lifetime.
type MemoryRepository struct {
	mu     sync.RWMutex
	places []place.Place
	index  map[string]int
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

// Seed loads an initial snapshot, assigning IDs to records without one.
func (m *MemoryRepository) Seed(places []place.Place) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range places {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.index[p.ID] = len(m.places)
		m.places = append(m.places, p)
	}
}

// ListAll returns a copy of the full snapshot in insertion order.
func (m *MemoryRepository) ListAll(ctx context.Context) ([]place.Place, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make([]place.Place, len(m.places))
	copy(snapshot, m.places)
	return snapshot, nil
}

// Create stores a new place and assigns its ID.
func (m *MemoryRepository) Create(ctx context.Context, p place.Place) (place.Place, error) {
	if p.Name == "" {
		return place.Place{}, fmt.Errorf("place name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.NewString()
	m.index[p.ID] = len(m.places)
	m.places = append(m.places, p)
	return p, nil
}

// Update applies a partial field set to a stored place.
func (m *MemoryRepository) Update(ctx context.Context, id string, updates PlaceUpdates) (place.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return place.Place{}, fmt.Errorf("place %s not found", id)
	}

	p := &m.places[i]
	if updates.Name != "" {
		p.Name = updates.Name
	}
	if updates.Category != "" {
		p.Category = updates.Category
	}
	if updates.Location != nil {
		p.Location = updates.Location
	}
	if updates.URL != "" {
		p.URL = updates.URL
	}
	if updates.Sources != nil {
		p.Sources = updates.Sources
	}
	if updates.TempleTypes != nil {
		p.TempleTypes = updates.TempleTypes
	}
	if updates.City != "" {
		p.City = updates.City
	}
	if updates.Country != "" {
		p.Country = updates.Country
	}
	if updates.Status != "" {
		p.Status = updates.Status
	}

	return *p, nil
}
