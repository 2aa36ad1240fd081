package match

import (
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

// TextSimilarity returns a normalized similarity in [0,1] between two
// strings: 1 - levenshtein/maxlen, case-insensitive and
// whitespace-trimmed. Empty input on either side scores 0; equal
// strings after normalization score exactly 1.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))

	if s1 == s2 {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	distance := levenshtein(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	return 1 - float64(distance)/float64(maxLen)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(s1, s2 string) int {
	prev := make([]int, len(s1)+1)
	curr := make([]int, len(s1)+1)

	for i := 0; i <= len(s1); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(s2); j++ {
		curr[0] = j
		for i := 1; i <= len(s1); i++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s1)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// GeoDistanceKm returns the great-circle distance between two
// coordinates using the haversine formula on a 6371 km sphere.
func GeoDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
