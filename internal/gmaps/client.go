package gmaps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wanderlist/internal/address"
)

const textSearchURL = "https://places.googleapis.com/v1/places:searchText"

// PlaceDetails is the resolved result of a text search.
type PlaceDetails struct {
	Name     string
	Lat      float64
	Lon      float64
	Address  string
	City     string
	Country  string
	PlaceID  string
	Types    []string
	Category string
	URL      string
}

// Client calls the Places Text Search API.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Places API client. An empty key produces a
// client whose lookups report not-found, so callers degrade to
// text-only data.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type textSearchResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
		Location         struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		Types         []string `json:"types"`
		GoogleMapsURI string   `json:"googleMapsUri"`
	} `json:"places"`
}

// SearchPlace resolves a free-text query to the best-matching place.
// Returns (nil, nil) when nothing matches or no API key is configured.
func (c *Client) SearchPlace(ctx context.Context, query string) (*PlaceDetails, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	body, err := json.Marshal(map[string]string{"textQuery": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, textSearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask",
		"places.displayName,places.formattedAddress,places.location,places.id,places.types,places.googleMapsUri")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("places search: status %d: %s", resp.StatusCode, string(data))
	}

	var decoded textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("places search: decoding response: %w", err)
	}

	if len(decoded.Places) == 0 {
		return nil, nil
	}

	best := decoded.Places[0]
	details := &PlaceDetails{
		Name:     best.DisplayName.Text,
		Lat:      best.Location.Latitude,
		Lon:      best.Location.Longitude,
		Address:  best.FormattedAddress,
		City:     address.ExtractCity(best.FormattedAddress),
		Country:  address.ExtractCountry(best.FormattedAddress),
		PlaceID:  best.ID,
		Types:    best.Types,
		Category: CategoryFromTypes(best.Types),
		URL:      best.GoogleMapsURI,
	}
	if details.Name == "" {
		details.Name = query
	}
	if details.URL == "" {
		details.URL = "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
	}

	return details, nil
}

// ExpandURL follows redirects on a short maps link and returns the
// final URL, which carries the coordinates and place name.
func (c *Client) ExpandURL(ctx context.Context, shortURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to expand URL: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	return resp.Request.URL.String(), nil
}
