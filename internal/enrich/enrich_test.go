package enrich

import (
	"reflect"
	"testing"

	"github.com/wanderlist/internal/place"
)

func TestEnhanceTempleTypes(t *testing.T) {
	e := NewEnricher()

	p := e.Enhance(place.Place{
		Name:     "Somnath Temple",
		Category: place.CategoryTemple,
	})
	if !reflect.DeepEqual(p.TempleTypes, []string{"Jyotirlinga"}) {
		t.Errorf("temple types = %v, want [Jyotirlinga]", p.TempleTypes)
	}

	// Existing tags are never recomputed.
	p = e.Enhance(place.Place{
		Name:        "Somnath Temple",
		Category:    place.CategoryTemple,
		TempleTypes: []string{"Custom"},
	})
	if !reflect.DeepEqual(p.TempleTypes, []string{"Custom"}) {
		t.Errorf("temple types = %v, want existing tags kept", p.TempleTypes)
	}

	// Non-temples are not classified.
	p = e.Enhance(place.Place{
		Name:     "Somnath Temple",
		Category: place.CategoryRestaurant,
	})
	if p.TempleTypes != nil {
		t.Errorf("temple types = %v, want none for a restaurant", p.TempleTypes)
	}
}

func TestEnhanceClassifiesFromAddress(t *testing.T) {
	e := NewEnricher()

	p := e.Enhance(place.Place{
		Name:     "Big Temple",
		Category: place.CategoryTemple,
		Location: &place.Location{Address: "Membalam Rd, Thanjavur 613007, India"},
	})
	if !reflect.DeepEqual(p.TempleTypes, []string{"Abhimana Sthalam"}) {
		t.Errorf("temple types = %v, want address keyword match", p.TempleTypes)
	}
}

func TestEnhanceCityCountry(t *testing.T) {
	e := NewEnricher()

	p := e.Enhance(place.Place{
		Name:     "Brihadeeswara Temple",
		Category: place.CategoryTemple,
		Location: &place.Location{Address: "Brihadeeswara Temple, Thanjavur 613001, India"},
	})
	if p.City != "Thanjavur" {
		t.Errorf("city = %q, want Thanjavur", p.City)
	}
	if p.Country != "India" {
		t.Errorf("country = %q, want India", p.Country)
	}

	// Stored values win over derivation in Enhance.
	p = e.Enhance(place.Place{
		Name:     "Brihadeeswara Temple",
		City:     "Tanjore",
		Country:  "India",
		Location: &place.Location{Address: "Brihadeeswara Temple, Thanjavur 613001, India"},
	})
	if p.City != "Tanjore" {
		t.Errorf("city = %q, want stored value kept", p.City)
	}
}

func TestEnhanceNoInput(t *testing.T) {
	e := NewEnricher()

	in := place.Place{Name: "Blue Tokai Coffee Roasters", Category: place.CategoryCafe}
	if got := e.Enhance(in); !reflect.DeepEqual(got, in) {
		t.Errorf("Enhance changed a place with nothing to derive: %+v", got)
	}
}

func TestCityCountryUpdates(t *testing.T) {
	tests := []struct {
		name        string
		place       place.Place
		wantCity    string
		wantCountry string
		wantOK      bool
	}{
		{
			name: "both missing",
			place: place.Place{
				Location: &place.Location{Address: "Virupaksha Temple, Hampi 583239, India"},
			},
			wantCity:    "Hampi",
			wantCountry: "India",
			wantOK:      true,
		},
		{
			name: "stale city corrected",
			place: place.Place{
				City:     "Tanjore",
				Country:  "India",
				Location: &place.Location{Address: "Brihadeeswara Temple, Thanjavur 613001, India"},
			},
			wantCity: "Thanjavur",
			wantOK:   true,
		},
		{
			name: "already current",
			place: place.Place{
				City:     "Thanjavur",
				Country:  "India",
				Location: &place.Location{Address: "Brihadeeswara Temple, Thanjavur 613001, India"},
			},
			wantOK: false,
		},
		{
			name:   "no address",
			place:  place.Place{Name: "Somnath Temple"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, country, ok := CityCountryUpdates(tt.place)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if city != tt.wantCity {
				t.Errorf("city = %q, want %q", city, tt.wantCity)
			}
			if country != tt.wantCountry {
				t.Errorf("country = %q, want %q", country, tt.wantCountry)
			}
		})
	}
}
