package match

import (
	"context"
	"fmt"

	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
)

// Action tells the caller what the resolver did with a candidate.
type Action string

const (
	ActionCreated        Action = "created"
	ActionMerged         Action = "merged"
	ActionSkipped        Action = "skipped"
	ActionDuplicateFound Action = "duplicate_found"
)

// Options controls duplicate handling. The zero value runs the
// duplicate check and reports without writing; DefaultOptions merges.
type Options struct {
	// Force creates a new record without running the duplicate check.
	Force bool
	// Merge back-fills the best match instead of creating a record.
	Merge bool
	// Skip leaves the repository untouched when a duplicate is found.
	Skip bool
}

// DefaultOptions is the merge-by-default behavior used by imports.
func DefaultOptions() Options {
	return Options{Merge: true}
}

// Resolution is the outcome of resolving one candidate.
type Resolution struct {
	Action  Action      `json:"action"`
	Place   place.Place `json:"place"`
	Match   *Result     `json:"match,omitempty"`
	Matches []Result    `json:"matches,omitempty"`
	Message string      `json:"message"`
}

// Resolver decides whether a candidate place is created, merged into
// an existing record, or left alone.
type Resolver struct {
	repo    repo.PlacesRepository
	matcher *Matcher
}

// NewResolver creates a resolver writing through the given repository.
func NewResolver(r repo.PlacesRepository) *Resolver {
	return &Resolver{
		repo:    r,
		matcher: NewMatcher(r),
	}
}

// Resolve runs the duplicate check for one candidate and performs at
// most one repository write. Repository failures propagate unchanged;
// there are no partial writes.
func (rs *Resolver) Resolve(ctx context.Context, candidate place.Place, opts Options) (*Resolution, error) {
	if opts.Force {
		created, err := rs.repo.Create(ctx, candidate)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			Action:  ActionCreated,
			Place:   created,
			Message: "Created new place (forced)",
		}, nil
	}

	matches, err := rs.matcher.FindMatches(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		created, err := rs.repo.Create(ctx, candidate)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			Action:  ActionCreated,
			Place:   created,
			Message: "Created new place",
		}, nil
	}

	bestMatch := matches[0]

	if opts.Skip {
		return &Resolution{
			Action:  ActionSkipped,
			Place:   bestMatch.Place,
			Match:   &bestMatch,
			Message: fmt.Sprintf("Skipped - duplicate found (%.0f%% match)", bestMatch.Score),
		}, nil
	}

	if opts.Merge {
		updated, err := rs.merge(ctx, candidate, bestMatch.Place)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			Action:  ActionMerged,
			Place:   updated,
			Match:   &bestMatch,
			Message: fmt.Sprintf("Merged with existing place (%.0f%% match)", bestMatch.Score),
		}, nil
	}

	return &Resolution{
		Action:  ActionDuplicateFound,
		Place:   bestMatch.Place,
		Match:   &bestMatch,
		Matches: matches,
		Message: fmt.Sprintf("Found %d potential duplicate(s)", len(matches)),
	}, nil
}

// merge applies the fill-only-if-missing policy: sources are unioned,
// and url, location and category are taken from the candidate only
// when the existing record has none. Everything else is left alone so
// manually curated fields are never clobbered.
func (rs *Resolver) merge(ctx context.Context, candidate, existing place.Place) (place.Place, error) {
	updates := repo.PlaceUpdates{
		Sources: place.MergeSources(existing.Sources, candidate.Sources),
	}

	if candidate.URL != "" && existing.URL == "" {
		updates.URL = candidate.URL
	}

	if candidate.Location != nil && existing.Location == nil {
		updates.Location = candidate.Location
	}

	if candidate.Category != "" && existing.Category == "" {
		updates.Category = candidate.Category
	}

	return rs.repo.Update(ctx, existing.ID, updates)
}
