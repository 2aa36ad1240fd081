package place

// Stats summarizes a snapshot of the places collection.
type Stats struct {
	Total      int
	ByCategory map[string]int
	ByStatus   map[string]int
	BySource   map[string]int
}

// ComputeStats tallies category, status and source counts over a full
// snapshot. A place contributes once per source tag it carries.
func ComputeStats(places []Place) Stats {
	stats := Stats{
		Total:      len(places),
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
		BySource:   make(map[string]int),
	}

	for _, p := range places {
		if p.Category != "" {
			stats.ByCategory[string(p.Category)]++
		}
		if p.Status != "" {
			stats.ByStatus[string(p.Status)]++
		}
		for _, source := range p.Sources {
			stats.BySource[source]++
		}
	}

	return stats
}
