// Package address extracts city, state and country components from the
// comma-separated formatted addresses returned by geocoding. The
// heuristics are tuned for the "Name, Neighborhood, City+Postal, State,
// Country" patterns common in South Asian addresses.
package address

import (
	"regexp"
	"strings"
)

var postalCodeRe = regexp.MustCompile(`\d{5,6}`)

// knownStates are state names that can share a segment with a postal
// code ("Karnataka 583239"). When the postal-bearing segment matches
// one of these, the city is the segment before it.
var knownStates = map[string]bool{
	"andhra pradesh": true,
	"gujarat":        true,
	"karnataka":      true,
	"kerala":         true,
	"madhya pradesh": true,
	"maharashtra":    true,
	"odisha":         true,
	"rajasthan":      true,
	"tamil nadu":     true,
	"telangana":      true,
	"uttar pradesh":  true,
	"uttarakhand":    true,
	"west bengal":    true,
}

// splitSegments splits a formatted address on commas, trimming each
// segment and dropping empties.
func splitSegments(formatted string) []string {
	var segments []string
	for _, part := range strings.Split(formatted, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// stripPostal removes embedded 5-6 digit postal codes from a segment.
func stripPostal(segment string) string {
	return strings.TrimSpace(postalCodeRe.ReplaceAllString(segment, ""))
}

// ExtractCity returns the likely city from a formatted address, or ""
// when the input is empty.
//
// Segments before the final country segment are scanned right-to-left
// for the first one carrying a postal code. If that segment's text
// (postal code stripped) is a known state name, the city is the segment
// immediately before it; otherwise the postal-bearing segment itself is
// the city. Addresses without postal codes fall back to the
// third-to-last segment (or the first, for short addresses).
func ExtractCity(formatted string) string {
	if formatted == "" {
		return ""
	}

	segments := splitSegments(formatted)
	if len(segments) == 0 {
		return ""
	}

	// Scan for a postal-bearing segment, skipping the country.
	for i := len(segments) - 2; i >= 0; i-- {
		if !postalCodeRe.MatchString(segments[i]) {
			continue
		}
		text := stripPostal(segments[i])
		if knownStates[strings.ToLower(text)] && i > 0 {
			return stripPostal(segments[i-1])
		}
		return text
	}

	if len(segments) >= 3 {
		return stripPostal(segments[len(segments)-3])
	}
	return stripPostal(segments[0])
}

// ExtractState returns the second-to-last segment with postal codes
// stripped, or "" when the address has fewer than two segments.
func ExtractState(formatted string) string {
	if formatted == "" {
		return ""
	}

	segments := splitSegments(formatted)
	if len(segments) < 2 {
		return ""
	}

	return stripPostal(segments[len(segments)-2])
}

// ExtractCountry returns the last segment of the formatted address.
func ExtractCountry(formatted string) string {
	if formatted == "" {
		return ""
	}

	segments := splitSegments(formatted)
	if len(segments) == 0 {
		return ""
	}

	return segments[len(segments)-1]
}
