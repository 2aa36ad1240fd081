package match

import (
	"math"
	"testing"
)

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			name: "identical strings",
			a:    "Brihadeeswara Temple",
			b:    "Brihadeeswara Temple",
			want: 1,
		},
		{
			name: "case and whitespace insensitive",
			a:    "  Somnath Temple ",
			b:    "somnath temple",
			want: 1,
		},
		{
			name: "empty first input",
			a:    "",
			b:    "Hampi",
			want: 0,
		},
		{
			name: "empty second input",
			a:    "Hampi",
			b:    "",
			want: 0,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "single substitution",
			a:    "abcd",
			b:    "abxd",
			want: 0.75,
		},
		{
			name: "completely different",
			a:    "abc",
			b:    "xyz",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TextSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTextSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Brihadeeswara Temple", "Brihadeeshwarar Temple"},
		{"Meenakshi Amman", "Meenakshi Temple"},
		{"kitten", "sitting"},
	}

	for _, pair := range pairs {
		ab := TextSimilarity(pair[0], pair[1])
		ba := TextSimilarity(pair[1], pair[0])
		if ab != ba {
			t.Errorf("TextSimilarity(%q, %q) = %v but reversed = %v", pair[0], pair[1], ab, ba)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "adc", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGeoDistanceKm(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		if got := GeoDistanceKm(10.79, 79.13, 10.79, 79.13); got != 0 {
			t.Errorf("GeoDistanceKm(same point) = %v, want 0", got)
		}
	})

	t.Run("known distance", func(t *testing.T) {
		// Thanjavur to Chennai, roughly 280 km great-circle.
		got := GeoDistanceKm(10.787, 79.1378, 13.0827, 80.2707)
		if got < 270 || got > 300 {
			t.Errorf("GeoDistanceKm(Thanjavur, Chennai) = %v, want roughly 280", got)
		}
	})

	t.Run("short distance", func(t *testing.T) {
		// ~111m of latitude at the equator.
		got := GeoDistanceKm(0, 0, 0.001, 0)
		if got < 0.10 || got > 0.12 {
			t.Errorf("GeoDistanceKm(0.001 deg lat) = %v, want ~0.111", got)
		}
	})
}

func BenchmarkTextSimilarity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TextSimilarity("Brihadeeswara Temple Thanjavur", "Brihadeeshwarar Temple, Thanjavur")
	}
}
