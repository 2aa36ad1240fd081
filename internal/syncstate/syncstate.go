// Package syncstate persists per-source sync bookmarks (last sync time
// and item count) in a small JSON file under the data directory.
package syncstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SourceState tracks the last successful sync for one source.
type SourceState struct {
	LastSync  *time.Time `json:"lastSync"`
	ItemCount int        `json:"itemCount"`
}

// State maps source names ("googleMaps", "twitter", ...) to their
// bookmarks.
type State map[string]SourceState

// Store reads and writes the sync-state file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file yields an empty state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse sync state: %w", err)
	}
	return state, nil
}

// Save writes the state file, creating the data directory if needed.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sync state: %w", err)
	}
	return nil
}

// Update stamps one source with the current time and item count.
func (s *Store) Update(source string, itemCount int) (State, error) {
	state, err := s.Load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state[source] = SourceState{LastSync: &now, ItemCount: itemCount}

	if err := s.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// LastSync returns the bookmark for a source; the zero SourceState
// means the source has never synced.
func (s *Store) LastSync(source string) (SourceState, error) {
	state, err := s.Load()
	if err != nil {
		return SourceState{}, err
	}
	return state[source], nil
}
