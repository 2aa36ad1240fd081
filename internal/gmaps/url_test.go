package gmaps

import "testing"

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		mapsURL string
		want    ParsedURL
		ok      bool
	}{
		{
			name:    "coordinates and place name",
			mapsURL: "https://www.google.com/maps/place/Virupaksha+Temple/@15.3350,76.4580,17z",
			want:    ParsedURL{Lat: 15.3350, Lon: 76.4580, HasCoords: true, Name: "Virupaksha Temple"},
			ok:      true,
		},
		{
			name:    "coordinates only",
			mapsURL: "https://www.google.com/maps/@10.7828,79.1318,15z",
			want:    ParsedURL{Lat: 10.7828, Lon: 79.1318, HasCoords: true},
			ok:      true,
		},
		{
			name:    "place name only",
			mapsURL: "https://www.google.com/maps/place/Somnath+Temple",
			want:    ParsedURL{Name: "Somnath Temple"},
			ok:      true,
		},
		{
			name:    "percent encoded name",
			mapsURL: "https://www.google.com/maps/place/Kashi%20Vishwanath/@25.3109,83.0107,17z",
			want:    ParsedURL{Lat: 25.3109, Lon: 83.0107, HasCoords: true, Name: "Kashi Vishwanath"},
			ok:      true,
		},
		{
			name:    "negative coordinates",
			mapsURL: "https://www.google.com/maps/@-36.8485,174.7633,12z",
			want:    ParsedURL{Lat: -36.8485, Lon: 174.7633, HasCoords: true},
			ok:      true,
		},
		{
			name:    "short link carries nothing",
			mapsURL: "https://maps.app.goo.gl/abc123",
			ok:      false,
		},
		{
			name:    "empty",
			mapsURL: "",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseURL(tt.mapsURL)
			if ok != tt.ok {
				t.Fatalf("ParseURL(%q) ok = %v, want %v", tt.mapsURL, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseURL(%q) = %+v, want %+v", tt.mapsURL, got, tt.want)
			}
		})
	}
}

func TestCategoryFromTypes(t *testing.T) {
	tests := []struct {
		types []string
		want  string
	}{
		{[]string{"hindu_temple", "place_of_worship", "point_of_interest"}, "Temple"},
		{[]string{"point_of_interest", "restaurant"}, "Restaurant"},
		{[]string{"cafe"}, "Cafe"},
		{[]string{"lodging"}, "Hotel"},
		{[]string{"point_of_interest", "establishment"}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := CategoryFromTypes(tt.types); got != tt.want {
			t.Errorf("CategoryFromTypes(%v) = %q, want %q", tt.types, got, tt.want)
		}
	}
}
