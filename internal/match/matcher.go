// Package match implements the deduplication core: a similarity scorer,
// a duplicate matcher that ranks the full places collection against a
// candidate, and a resolver that decides create/merge/skip and performs
// the field-level merge.
package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/wanderlist/internal/debug"
	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
)

// Scoring weights and thresholds for duplicate detection.
const (
	// MatchThreshold is the minimum combined score for a pair to be
	// reported as a potential duplicate.
	MatchThreshold = 50.0

	nameSimilarityFloor    = 0.7
	nameWeight             = 50.0
	urlBonus               = 40.0
	sameLocationBonus      = 30.0
	nearbyLocationBonus    = 15.0
	sameLocationKm         = 0.1
	nearbyLocationKm       = 1.0
	addressSimilarityFloor = 0.7
	addressWeight          = 20.0
	maxScore               = 100.0
)

// Result is one scored pairing of the candidate against an existing
// record. Reasons lists the contributing signals in evaluation order.
type Result struct {
	Place   place.Place `json:"place"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
}

// Matcher finds likely duplicates of a candidate place.
type Matcher struct {
	repo  repo.PlacesRepository
	debug bool
}

// NewMatcher creates a matcher reading from the given repository.
func NewMatcher(r repo.PlacesRepository) *Matcher {
	return &Matcher{repo: r}
}

// SetDebug enables diagnostic logging of per-pair scoring.
func (m *Matcher) SetDebug(enabled bool) {
	m.debug = enabled
}

// FindMatches scores the candidate against the full snapshot and
// returns results at or above MatchThreshold, highest score first.
// Ties keep the snapshot's enumeration order.
func (m *Matcher) FindMatches(ctx context.Context, candidate place.Place) ([]Result, error) {
	all, err := m.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return m.ScoreAgainst(candidate, all), nil
}

// ScoreAgainst runs the pairwise scoring over an already-loaded
// snapshot. Exposed so batch callers can reuse one snapshot read.
func (m *Matcher) ScoreAgainst(candidate place.Place, all []place.Place) []Result {
	var matches []Result

	for _, existing := range all {
		score, reasons := scorePair(candidate, existing)
		debug.DebugOutput(m.debug, "scored %q vs %q: %.1f", candidate.Name, existing.Name, score)
		if score >= MatchThreshold {
			matches = append(matches, Result{
				Place:   existing,
				Score:   score,
				Reasons: reasons,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// scorePair computes the additive duplicate score for one pair along
// with human-readable reasons per contributing signal.
func scorePair(candidate, existing place.Place) (float64, []string) {
	var score float64
	var reasons []string

	nameSim := TextSimilarity(candidate.Name, existing.Name)
	if nameSim > nameSimilarityFloor {
		score += nameSim * nameWeight
		reasons = append(reasons, fmt.Sprintf("Name similarity: %.0f%%", nameSim*100))
	}

	if candidate.URL != "" && existing.URL != "" && candidate.URL == existing.URL {
		score += urlBonus
		reasons = append(reasons, "Exact URL match")
	}

	// At most one location bonus applies per pair.
	if candidate.HasCoordinates() && existing.HasCoordinates() {
		distance := GeoDistanceKm(
			candidate.Location.Lat, candidate.Location.Lon,
			existing.Location.Lat, existing.Location.Lon,
		)
		if distance < sameLocationKm {
			score += sameLocationBonus
			reasons = append(reasons, fmt.Sprintf("Same location (%.0fm apart)", distance*1000))
		} else if distance < nearbyLocationKm {
			score += nearbyLocationBonus
			reasons = append(reasons, fmt.Sprintf("Nearby (%.1fkm apart)", distance))
		}
	}

	candidateAddr := addressOf(candidate)
	existingAddr := addressOf(existing)
	if candidateAddr != "" && existingAddr != "" {
		addrSim := TextSimilarity(candidateAddr, existingAddr)
		if addrSim > addressSimilarityFloor {
			score += addrSim * addressWeight
			reasons = append(reasons, fmt.Sprintf("Address similarity: %.0f%%", addrSim*100))
		}
	}

	if score > maxScore {
		score = maxScore
	}

	return score, reasons
}

func addressOf(p place.Place) string {
	if p.Location == nil {
		return ""
	}
	return p.Location.Address
}
