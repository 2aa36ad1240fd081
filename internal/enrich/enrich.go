// Package enrich derives metadata for a place before it reaches the
// dedupe resolver: temple classification tags, presiding deity, and
// city/country parsed from the formatted address.
package enrich

import (
	"github.com/wanderlist/internal/address"
	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/temple"
)

// Enricher applies the classification and address heuristics.
type Enricher struct {
	classifier *temple.Classifier
}

// NewEnricher creates an enricher with the built-in classification table.
func NewEnricher() *Enricher {
	return &Enricher{classifier: temple.NewClassifier()}
}

// NewEnricherWithClassifier creates an enricher over a custom table.
func NewEnricherWithClassifier(c *temple.Classifier) *Enricher {
	return &Enricher{classifier: c}
}

// Enhance returns a copy of the place with temple types filled in (for
// temples only) and city/country derived from the address when absent.
// It never fails; places with no usable input come back unchanged.
func (e *Enricher) Enhance(p place.Place) place.Place {
	if p.Category == place.CategoryTemple && len(p.TempleTypes) == 0 {
		addr := ""
		if p.Location != nil {
			addr = p.Location.Address
		}
		p.TempleTypes = e.classifier.Classify(p.Name, addr)
	}

	if p.Location != nil && p.Location.Address != "" {
		if p.City == "" {
			p.City = address.ExtractCity(p.Location.Address)
		}
		if p.Country == "" {
			p.Country = address.ExtractCountry(p.Location.Address)
		}
	}

	return p
}

// Deity returns the presiding deity for a temple name, or "".
func (e *Enricher) Deity(name string) string {
	return e.classifier.Deity(name)
}

// CityCountryUpdates computes the city/country back-fill for a stored
// place. A field is included when the derived value is non-empty and
// differs from the stored one, so stale derivations get corrected.
// Returns false when there is nothing to update.
func CityCountryUpdates(p place.Place) (city, country string, ok bool) {
	if p.Location == nil || p.Location.Address == "" {
		return "", "", false
	}

	derivedCity := address.ExtractCity(p.Location.Address)
	derivedCountry := address.ExtractCountry(p.Location.Address)

	if derivedCity != "" && derivedCity != p.City {
		city = derivedCity
	}
	if derivedCountry != "" && derivedCountry != p.Country {
		country = derivedCountry
	}

	return city, country, city != "" || country != ""
}
