package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wanderlist/internal/place"
)

const (
	notionBaseURL    = "https://api.notion.com/v1"
	notionVersion    = "2022-06-28"
	notionRatePerSec = 3
)

// NotionRepository stores places in a Notion database. The Notion page
// property bags never leave this file; translation to and from the
// canonical Place happens at the boundary.
type NotionRepository struct {
	apiKey     string
	databaseID string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewNotionRepository creates a repository for one Notion database.
func NewNotionRepository(apiKey, databaseID string) *NotionRepository {
	return &NotionRepository{
		apiKey:     apiKey,
		databaseID: databaseID,
		client:     &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(notionRatePerSec), 1),
	}
}

// notionPage is the subset of a Notion page the translation layer reads.
type notionPage struct {
	ID         string                    `json:"id"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionProperty struct {
	Title       []notionRichText  `json:"title,omitempty"`
	RichText    []notionRichText  `json:"rich_text,omitempty"`
	Select      *notionSelect     `json:"select,omitempty"`
	MultiSelect []notionSelect    `json:"multi_select,omitempty"`
	URL         string            `json:"url,omitempty"`
	Place       *notionPlaceValue `json:"place,omitempty"`
}

type notionRichText struct {
	PlainText string `json:"plain_text,omitempty"`
}

type notionSelect struct {
	Name string `json:"name"`
}

type notionPlaceValue struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address,omitempty"`
}

type queryResponse struct {
	Results    []notionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// ListAll pages through the database and returns every record.
func (r *NotionRepository) ListAll(ctx context.Context) ([]place.Place, error) {
	var places []place.Place
	cursor := ""

	for {
		body := map[string]interface{}{}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var resp queryResponse
		path := fmt.Sprintf("/databases/%s/query", r.databaseID)
		if err := r.do(ctx, http.MethodPost, path, body, &resp); err != nil {
			return nil, fmt.Errorf("failed to query places database: %w", err)
		}

		for _, page := range resp.Results {
			places = append(places, pageToPlace(page))
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return places, nil
}

// Create writes a new page and returns the place with its page ID.
func (r *NotionRepository) Create(ctx context.Context, p place.Place) (place.Place, error) {
	if p.Name == "" {
		return place.Place{}, fmt.Errorf("place name is required")
	}

	properties := placeToProperties(p)

	body := map[string]interface{}{
		"parent":     map[string]string{"database_id": r.databaseID},
		"properties": properties,
	}

	if p.Notes != "" {
		body["children"] = []interface{}{paragraphBlock(p.Notes)}
	}

	var page notionPage
	if err := r.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return place.Place{}, fmt.Errorf("failed to create place: %w", err)
	}

	p.ID = page.ID
	return p, nil
}

// Update patches only the properties present in the update set.
func (r *NotionRepository) Update(ctx context.Context, id string, updates PlaceUpdates) (place.Place, error) {
	properties := updatesToProperties(updates)

	body := map[string]interface{}{"properties": properties}

	var page notionPage
	if err := r.do(ctx, http.MethodPatch, "/pages/"+id, body, &page); err != nil {
		return place.Place{}, fmt.Errorf("failed to update place %s: %w", id, err)
	}

	return pageToPlace(page), nil
}

// do issues one rate-limited API request and decodes the response.
func (r *NotionRepository) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, notionBaseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notion API %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// pageToPlace translates a Notion property bag into the canonical Place.
func pageToPlace(page notionPage) place.Place {
	props := page.Properties

	p := place.Place{
		ID:      page.ID,
		Name:    plainText(props["Name"].Title),
		URL:     props["URL"].URL,
		City:    plainText(props["City"].RichText),
		Country: plainText(props["Country"].RichText),
	}

	if sel := props["Category"].Select; sel != nil {
		p.Category = place.Category(sel.Name)
	}
	if sel := props["Status"].Select; sel != nil {
		p.Status = place.Status(sel.Name)
	}
	for _, s := range props["Source"].MultiSelect {
		p.Sources = append(p.Sources, s.Name)
	}
	for _, t := range props["Temple Type"].MultiSelect {
		p.TempleTypes = append(p.TempleTypes, t.Name)
	}
	if pl := props["Place"].Place; pl != nil {
		p.Location = &place.Location{
			Lat:     pl.Lat,
			Lon:     pl.Lon,
			Name:    pl.Name,
			Address: pl.Address,
		}
	}

	return p
}

// placeToProperties builds the property bag for a create call.
func placeToProperties(p place.Place) map[string]interface{} {
	properties := map[string]interface{}{
		"Name": titleProperty(p.Name),
	}

	status := p.Status
	if status == "" {
		status = place.StatusWantToGo
	}
	properties["Status"] = selectProperty(string(status))

	if p.Category != "" {
		properties["Category"] = selectProperty(string(p.Category))
	}
	if p.URL != "" {
		properties["URL"] = map[string]interface{}{"url": p.URL}
	}
	if len(p.Sources) > 0 {
		properties["Source"] = multiSelectProperty(p.Sources)
	}
	if len(p.TempleTypes) > 0 {
		properties["Temple Type"] = multiSelectProperty(p.TempleTypes)
	}
	if p.City != "" {
		properties["City"] = richTextProperty(p.City)
	}
	if p.Country != "" {
		properties["Country"] = richTextProperty(p.Country)
	}
	if p.Location != nil {
		properties["Place"] = placeProperty(p.Location, p.Name)
	}

	return properties
}

// updatesToProperties builds the property bag for a patch call; absent
// fields are left out so Notion keeps the stored values.
func updatesToProperties(updates PlaceUpdates) map[string]interface{} {
	properties := map[string]interface{}{}

	if updates.Name != "" {
		properties["Name"] = titleProperty(updates.Name)
	}
	if updates.Category != "" {
		properties["Category"] = selectProperty(string(updates.Category))
	}
	if updates.Status != "" {
		properties["Status"] = selectProperty(string(updates.Status))
	}
	if updates.URL != "" {
		properties["URL"] = map[string]interface{}{"url": updates.URL}
	}
	if updates.Sources != nil {
		properties["Source"] = multiSelectProperty(updates.Sources)
	}
	if updates.TempleTypes != nil {
		properties["Temple Type"] = multiSelectProperty(updates.TempleTypes)
	}
	if updates.City != "" {
		properties["City"] = richTextProperty(updates.City)
	}
	if updates.Country != "" {
		properties["Country"] = richTextProperty(updates.Country)
	}
	if updates.Location != nil {
		properties["Place"] = placeProperty(updates.Location, updates.Name)
	}

	return properties
}

func plainText(rich []notionRichText) string {
	if len(rich) == 0 {
		return ""
	}
	return rich[0].PlainText
}

func titleProperty(content string) map[string]interface{} {
	return map[string]interface{}{
		"title": []interface{}{
			map[string]interface{}{"text": map[string]string{"content": content}},
		},
	}
}

func richTextProperty(content string) map[string]interface{} {
	return map[string]interface{}{
		"rich_text": []interface{}{
			map[string]interface{}{"text": map[string]string{"content": content}},
		},
	}
}

func selectProperty(name string) map[string]interface{} {
	return map[string]interface{}{"select": map[string]string{"name": name}}
}

func multiSelectProperty(names []string) map[string]interface{} {
	options := make([]interface{}, 0, len(names))
	for _, name := range names {
		options = append(options, map[string]string{"name": name})
	}
	return map[string]interface{}{"multi_select": options}
}

func placeProperty(loc *place.Location, fallbackName string) map[string]interface{} {
	name := loc.Name
	if name == "" {
		name = fallbackName
	}
	return map[string]interface{}{
		"type": "place",
		"place": map[string]interface{}{
			"lat":     loc.Lat,
			"lon":     loc.Lon,
			"name":    name,
			"address": loc.Address,
		},
	}
}

func paragraphBlock(text string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]interface{}{
			"rich_text": []interface{}{
				map[string]interface{}{"text": map[string]string{"content": text}},
			},
		},
	}
}
