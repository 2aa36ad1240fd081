// Package importer reads plain-text place lists and feeds them through
// the dedupe resolver, one candidate at a time.
//
// Supported line formats:
//
//	Temple Name
//	Temple Name, City
//	Temple Name - City, State
//	https://maps.app.goo.gl/...
//	Temple Name https://maps.google.com/...
//
// Lines starting with # or // are comments; bullets and numbering are
// stripped from names.
package importer

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/wanderlist/internal/match"
	"github.com/wanderlist/internal/place"
)

var (
	urlRe       = regexp.MustCompile(`https?://\S+`)
	placeNameRe = regexp.MustCompile(`/place/([^/@]+)`)
	bulletRe    = regexp.MustCompile(`^[-•*]\s*`)
	numberingRe = regexp.MustCompile(`^\d+\.\s*`)
)

// Entry is one parsed line from an import file.
type Entry struct {
	Name     string
	Location string
	URL      string
}

// ParseLine parses a single import line. Returns false for lines that
// yield no usable place (empty, or a URL with no extractable name).
func ParseLine(line string) (Entry, bool) {
	var entry Entry
	text := line

	if m := urlRe.FindString(line); m != "" {
		entry.URL = m
		text = strings.TrimSpace(urlRe.ReplaceAllString(line, ""))
	}

	// A bare URL can still carry the place name in its path.
	if text == "" && entry.URL != "" {
		if m := placeNameRe.FindStringSubmatch(entry.URL); m != nil {
			if decoded, err := url.QueryUnescape(strings.ReplaceAll(m[1], "+", " ")); err == nil {
				text = decoded
			} else {
				text = strings.ReplaceAll(m[1], "+", " ")
			}
		}
	}

	if text == "" {
		return Entry{}, false
	}

	name := text
	if idx := strings.Index(text, " - "); idx >= 0 {
		name = strings.TrimSpace(text[:idx])
		entry.Location = strings.TrimSpace(text[idx+3:])
	} else if parts := strings.Split(text, ","); len(parts) == 2 {
		name = strings.TrimSpace(parts[0])
		entry.Location = strings.TrimSpace(parts[1])
	}

	name = bulletRe.ReplaceAllString(name, "")
	name = numberingRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, false
	}

	entry.Name = name
	return entry, true
}

// ParseFile reads an import file and returns its parsed entries.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse parses import file content, skipping blanks and comments.
func Parse(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if entry, ok := ParseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// BatchError records a candidate that failed to import.
type BatchError struct {
	Place place.Place
	Err   error
}

// BatchResult tallies the outcome of a batch import.
type BatchResult struct {
	Created []*match.Resolution
	Merged  []*match.Resolution
	Skipped []*match.Resolution
	Errors  []BatchError
}

// BatchImport resolves candidates one at a time. A failed candidate is
// recorded and the rest of the batch continues.
func BatchImport(ctx context.Context, resolver *match.Resolver, candidates []place.Place, opts match.Options) BatchResult {
	var result BatchResult

	for _, candidate := range candidates {
		res, err := resolver.Resolve(ctx, candidate, opts)
		if err != nil {
			result.Errors = append(result.Errors, BatchError{Place: candidate, Err: err})
			continue
		}

		switch res.Action {
		case match.ActionCreated:
			result.Created = append(result.Created, res)
		case match.ActionMerged:
			result.Merged = append(result.Merged, res)
		case match.ActionSkipped:
			result.Skipped = append(result.Skipped, res)
		}
	}

	return result
}
