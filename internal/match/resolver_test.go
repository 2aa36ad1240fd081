package match

import (
	"context"
	"reflect"
	"testing"

	"github.com/wanderlist/internal/place"
)

func TestResolveForceCreates(t *testing.T) {
	r := seedRepo(t, place.Place{Name: "Kailasanathar Temple"})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{Name: "Kailasanathar Temple"}, Options{Force: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionCreated {
		t.Errorf("action = %q, want %q", res.Action, ActionCreated)
	}
	if res.Place.ID == "" {
		t.Error("created place has no ID")
	}

	all, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("repository holds %d places, want 2 (force bypasses the check)", len(all))
	}
}

func TestResolveNoMatchCreates(t *testing.T) {
	r := seedRepo(t, place.Place{Name: "Filter Coffee House", Sources: []string{"Manual"}})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:    "Virupaksha Temple",
		Sources: []string{"textImport"},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionCreated {
		t.Errorf("action = %q, want %q", res.Action, ActionCreated)
	}
	if res.Place.Name != "Virupaksha Temple" {
		t.Errorf("created place = %q", res.Place.Name)
	}
}

func TestResolveSkip(t *testing.T) {
	r := seedRepo(t, place.Place{Name: "Virupaksha Temple", Sources: []string{"Manual"}})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:    "Virupaksha Temple",
		Sources: []string{"Twitter"},
	}, Options{Skip: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionSkipped {
		t.Errorf("action = %q, want %q", res.Action, ActionSkipped)
	}
	if res.Match == nil {
		t.Fatal("skipped resolution carries no match")
	}

	all, _ := r.ListAll(context.Background())
	if len(all) != 1 {
		t.Errorf("repository holds %d places, want 1 (skip writes nothing)", len(all))
	}
	if !reflect.DeepEqual(all[0].Sources, []string{"Manual"}) {
		t.Errorf("stored sources = %v, want untouched", all[0].Sources)
	}
}

func TestResolveMergeUnionsSources(t *testing.T) {
	r := seedRepo(t, place.Place{Name: "Virupaksha Temple", Sources: []string{"Manual"}})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:    "Virupaksha Temple",
		Sources: []string{"Twitter"},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionMerged {
		t.Fatalf("action = %q, want %q", res.Action, ActionMerged)
	}
	want := []string{"Manual", "Twitter"}
	if !reflect.DeepEqual(res.Place.Sources, want) {
		t.Errorf("merged sources = %v, want %v", res.Place.Sources, want)
	}
}

func TestResolveMergeBackfillsMissingFields(t *testing.T) {
	r := seedRepo(t, place.Place{
		Name:    "Virupaksha Temple",
		Sources: []string{"Manual"},
	})

	candidateLoc := &place.Location{Lat: 15.335, Lon: 76.458, Address: "Hampi, Karnataka 583239, India"}
	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:     "Virupaksha Temple",
		URL:      "https://maps.app.goo.gl/virupaksha",
		Location: candidateLoc,
		Category: place.CategoryTemple,
		Sources:  []string{"Twitter"},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionMerged {
		t.Fatalf("action = %q, want %q", res.Action, ActionMerged)
	}
	if res.Place.URL != "https://maps.app.goo.gl/virupaksha" {
		t.Errorf("url = %q, want back-filled", res.Place.URL)
	}
	if res.Place.Location == nil || res.Place.Location.Lat != 15.335 {
		t.Errorf("location = %+v, want back-filled", res.Place.Location)
	}
	if res.Place.Category != place.CategoryTemple {
		t.Errorf("category = %q, want back-filled", res.Place.Category)
	}
}

func TestResolveMergeNeverOverwrites(t *testing.T) {
	existingLoc := &place.Location{Lat: 15.3350, Lon: 76.4580, Address: "Hampi, Karnataka 583239, India"}
	r := seedRepo(t, place.Place{
		Name:     "Virupaksha Temple",
		URL:      "https://maps.app.goo.gl/original",
		Location: existingLoc,
		Category: place.CategoryTemple,
		Sources:  []string{"Manual"},
		Notes:    "visited 2024",
	})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:     "Virupaksha Temple",
		URL:      "https://maps.app.goo.gl/other",
		Location: &place.Location{Lat: 15.3351, Lon: 76.4581},
		Category: place.CategoryRestaurant,
		Sources:  []string{"Twitter"},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Place.URL != "https://maps.app.goo.gl/original" {
		t.Errorf("url = %q, merge must not overwrite", res.Place.URL)
	}
	if res.Place.Location.Lat != 15.3350 {
		t.Errorf("location = %+v, merge must not overwrite", res.Place.Location)
	}
	if res.Place.Category != place.CategoryTemple {
		t.Errorf("category = %q, merge must not overwrite", res.Place.Category)
	}
	if res.Place.Notes != "visited 2024" {
		t.Errorf("notes = %q, merge must not touch notes", res.Place.Notes)
	}
}

func TestResolveDuplicateFoundReportsAll(t *testing.T) {
	r := seedRepo(t,
		place.Place{Name: "Virupaksha Temple"},
		place.Place{Name: "Virupaksha Temple", URL: "https://g.co/virupaksha"},
	)

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name: "Virupaksha Temple",
		URL:  "https://g.co/virupaksha",
	}, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionDuplicateFound {
		t.Fatalf("action = %q, want %q", res.Action, ActionDuplicateFound)
	}
	if len(res.Matches) != 2 {
		t.Errorf("got %d matches, want 2", len(res.Matches))
	}
	if res.Match == nil || res.Match.Place.URL != "https://g.co/virupaksha" {
		t.Errorf("best match = %+v, want the URL-matched record", res.Match)
	}

	all, _ := r.ListAll(context.Background())
	if len(all) != 2 {
		t.Errorf("repository holds %d places, want 2 (report mode writes nothing)", len(all))
	}
}

// End to end: a tweet-sourced candidate merges into a maps-sourced
// record, back-filling the URL and unioning sources.
func TestResolveEndToEndMerge(t *testing.T) {
	r := seedRepo(t, place.Place{
		Name:     "Brihadeeshwarar Temple",
		Category: place.CategoryTemple,
		City:     "Thanjavur",
		Country:  "India",
		Sources:  []string{"Google Maps"},
	})

	resolver := NewResolver(r)
	res, err := resolver.Resolve(context.Background(), place.Place{
		Name:    "Brihadeeshwarar Temple",
		URL:     "https://maps.app.goo.gl/x",
		Sources: []string{"Twitter"},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Action != ActionMerged {
		t.Fatalf("action = %q, want %q", res.Action, ActionMerged)
	}
	if res.Place.Name != "Brihadeeshwarar Temple" {
		t.Errorf("name = %q, want existing record kept", res.Place.Name)
	}
	if res.Place.URL != "https://maps.app.goo.gl/x" {
		t.Errorf("url = %q, want back-filled", res.Place.URL)
	}
	want := []string{"Google Maps", "Twitter"}
	if !reflect.DeepEqual(res.Place.Sources, want) {
		t.Errorf("sources = %v, want %v", res.Place.Sources, want)
	}
}
