// Package gmaps parses Google Maps links and talks to the Places Text
// Search API to resolve coordinates, addresses and categories.
package gmaps

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	coordRe     = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	placePathRe = regexp.MustCompile(`/place/([^/@]+)`)
)

// ParsedURL holds whatever a maps URL yields: coordinates and/or a
// place name. URLs must already be expanded (short goo.gl links
// redirect; see ExpandURL).
type ParsedURL struct {
	Lat       float64
	Lon       float64
	HasCoords bool
	Name      string
}

// ParseURL extracts coordinates ("@lat,lon") and the place name
// ("/place/<name>") from an expanded Google Maps URL. Returns false
// when the URL carries neither.
func ParseURL(mapsURL string) (ParsedURL, bool) {
	var parsed ParsedURL

	if m := coordRe.FindStringSubmatch(mapsURL); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLon == nil {
			parsed.Lat = lat
			parsed.Lon = lon
			parsed.HasCoords = true
		}
	}

	if m := placePathRe.FindStringSubmatch(mapsURL); m != nil {
		name := strings.ReplaceAll(m[1], "+", " ")
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		parsed.Name = name
	}

	if !parsed.HasCoords && parsed.Name == "" {
		return ParsedURL{}, false
	}
	return parsed, true
}

// categoryByType maps Google place types to our category labels.
// Checked in the order the API returns types; first known type wins.
var categoryByType = map[string]string{
	"restaurant":         "Restaurant",
	"cafe":               "Cafe",
	"bar":                "Bar",
	"night_club":         "Bar",
	"museum":             "Museum",
	"art_gallery":        "Museum",
	"park":               "Park",
	"tourist_attraction": "Tourist Attraction",
	"place_of_worship":   "Temple",
	"hindu_temple":       "Temple",
	"church":             "Temple",
	"mosque":             "Temple",
	"synagogue":          "Temple",
	"lodging":            "Hotel",
	"shopping_mall":      "Shop",
	"store":              "Shop",
}

// CategoryFromTypes returns the category label for a list of Google
// place types, or "" when no type is recognized.
func CategoryFromTypes(types []string) string {
	for _, t := range types {
		if category, ok := categoryByType[t]; ok {
			return category
		}
	}
	return ""
}
