package place

import "sort"

// Category labels a place. The set mirrors the Notion select options.
type Category string

const (
	CategoryRestaurant        Category = "Restaurant"
	CategoryCafe              Category = "Cafe"
	CategoryBar               Category = "Bar"
	CategoryTemple            Category = "Temple"
	CategoryMuseum            Category = "Museum"
	CategoryPark              Category = "Park"
	CategoryHotel             Category = "Hotel"
	CategoryShop              Category = "Shop"
	CategoryTouristAttraction Category = "Tourist Attraction"
	CategoryOther             Category = "Other"
)

// Status is the lifecycle label for a place.
type Status string

const (
	StatusWantToGo Status = "Want to go"
	StatusVisited  Status = "Visited"
	StatusMaybe    Status = "Maybe"
)

// Location holds resolved coordinates for a place. Lat and Lon are
// always set together; a Place with no coordinates has a nil Location.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address,omitempty"`
}

// Place is the canonical record shared by every source adapter and the
// repository implementations. ID is assigned by the repository on
// create and never changes.
type Place struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Category    Category  `json:"category,omitempty"`
	Location    *Location `json:"location,omitempty"`
	URL         string    `json:"url,omitempty"`
	Sources     []string  `json:"sources,omitempty"`
	TempleTypes []string  `json:"temple_types,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// HasCoordinates reports whether the place carries a usable lat/lon
// pair. A location may hold only an address (manual entry before
// geocoding); zero coordinates mean none were resolved.
func (p *Place) HasCoordinates() bool {
	return p.Location != nil && p.Location.Lat != 0 && p.Location.Lon != 0
}

// MergeSources returns the union of two source lists with duplicates
// collapsed. Output is sorted so repeated merges are stable.
func MergeSources(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	var merged []string
	for _, s := range existing {
		if s != "" && !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	for _, s := range incoming {
		if s != "" && !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	sort.Strings(merged)
	return merged
}

// HasSource reports whether the place already carries a provenance tag.
func (p *Place) HasSource(source string) bool {
	for _, s := range p.Sources {
		if s == source {
			return true
		}
	}
	return false
}
