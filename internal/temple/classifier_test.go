package temple

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		addr     string
		wantTags []string
	}{
		{
			name:     "Somnath Temple",
			wantTags: []string{"Jyotirlinga"},
		},
		{
			name:     "Kashi Vishwanath Temple",
			addr:     "Lahori Tola, Varanasi, Uttar Pradesh 221001, India",
			wantTags: []string{"Jyotirlinga"},
		},
		{
			name:     "Meenakshi Amman Temple",
			wantTags: []string{"Shakti Peetham"},
		},
		{
			name:     "Brihadeeswara Temple",
			addr:     "Thanjavur, Tamil Nadu, India",
			wantTags: []string{"Abhimana Sthalam"},
		},
		{
			// Matched by address keyword alone.
			name:     "Big Temple",
			addr:     "Membalam Rd, Thanjavur 613007, India",
			wantTags: []string{"Abhimana Sthalam"},
		},
		{
			// Badrinath sits in two traditions; tags come in table order.
			name:     "Badrinath Temple",
			wantTags: []string{"Divya Desam", "Char Dham"},
		},
		{
			// "Rama" is a short shared word; exact-match groups must not
			// fire on it even though Rameswaram contains it.
			name:     "Sri Rama Temple",
			wantTags: nil,
		},
		{
			name:     "Blue Tokai Coffee Roasters",
			wantTags: nil,
		},
		{
			name:     "",
			wantTags: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.name, tt.addr)
			if !reflect.DeepEqual(got, tt.wantTags) {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.name, tt.addr, got, tt.wantTags)
			}
		})
	}
}

func TestClassifySomnathGujarat(t *testing.T) {
	c := NewClassifier()
	tags := c.Classify("Somnath Temple", "Gujarat")

	found := false
	for _, tag := range tags {
		if tag == "Jyotirlinga" {
			found = true
		}
	}
	if !found {
		t.Errorf("Classify(Somnath Temple, Gujarat) = %v, want Jyotirlinga included", tags)
	}
}

func TestDeity(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		want string
	}{
		{"Somnath Temple", "Shiva"},
		{"Mahakaleshwar Jyotirlinga", "Shiva"},
		{"Tirupati Balaji", "Vishnu"},
		{"Meenakshi Amman Temple", "Devi"},
		{"Panchamukhi Anjaneya Temple", "Hanuman"},
		{"Siddhivinayaka Temple", "Ganesha"},
		{"Badrinath Kedarnath Trust", "Vishnu"}, // first table entry wins
		{"Blue Tokai Coffee Roasters", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := c.Deity(tt.name); got != tt.want {
			t.Errorf("Deity(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoadGroups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")

	yaml := `groups:
  - tag: Paadal Petra Sthalam
    exact_match: true
    temples:
      - Kapaleeshwarar
      - Marundeeswarar
    keywords:
      - mylapore
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	c, err := NewClassifierFromFile(path)
	if err != nil {
		t.Fatalf("NewClassifierFromFile: %v", err)
	}

	tags := c.Classify("Kapaleeshwarar Temple", "Mylapore, Chennai, India")
	if !reflect.DeepEqual(tags, []string{"Paadal Petra Sthalam"}) {
		t.Errorf("Classify with custom table = %v", tags)
	}

	// The custom table replaces the built-in one entirely.
	if tags := c.Classify("Somnath Temple", ""); tags != nil {
		t.Errorf("custom table still tagged Somnath: %v", tags)
	}
}

func TestLoadGroupsRejectsBadTables(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"empty groups", "groups: []\n"},
		{"missing tag", "groups:\n  - temples: [Somnath]\n"},
		{"not yaml", "{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write table: %v", err)
			}
			if _, err := LoadGroups(path); err == nil {
				t.Error("LoadGroups accepted an invalid table")
			}
		})
	}
}

func TestLoadGroupsMissingFile(t *testing.T) {
	if _, err := LoadGroups(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadGroups accepted a missing file")
	}
}
