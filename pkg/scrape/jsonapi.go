package scrape

import (
	"encoding/json"
	"fmt"
)

// apiItem is one result object from a structured upstream API. Fields cover
// both naming conventions the APIs use.
type apiItem struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	Year  int    `json:"year"`
	URL   string `json:"url"`
	Slug  string `json:"slug"`
}

func (it apiItem) title() string {
	title := NormalizeSpace(it.Title)
	if title == "" {
		title = NormalizeSpace(it.Name)
	}
	if title == "" {
		return ""
	}
	if it.Year > 0 {
		return fmt.Sprintf("%s (%d)", title, it.Year)
	}
	return title
}

// ParseAPIResults decodes a structured search response, which may be a bare
// array of result objects or an object wrapping them in a "results" field.
// Items without a usable title, or whose URL fails domain validation, are
// dropped. Output is deduplicated by URL and capped at MaxResults.
func ParseAPIResults(body []byte, v *Validator, movieURL func(slug string) string) ([]SearchResult, error) {
	var items []apiItem
	if err := json.Unmarshal(body, &items); err != nil {
		var envelope struct {
			Results []apiItem `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("decode api response: %w", err)
		}
		items = envelope.Results
	}

	seen := make(map[string]bool)
	results := make([]SearchResult, 0, MaxResults)

	for _, it := range items {
		if len(results) >= MaxResults {
			break
		}

		title := it.title()
		if title == "" {
			continue
		}

		itemURL := it.URL
		if itemURL == "" && it.Slug != "" && movieURL != nil {
			itemURL = movieURL(it.Slug)
		}
		if itemURL == "" || seen[itemURL] {
			continue
		}
		if !v.ValidOrigin(itemURL) {
			continue
		}

		seen[itemURL] = true
		results = append(results, SearchResult{Title: title, URL: itemURL})
	}

	return results, nil
}

// ParseAPIPage decodes a structured movie response into a timestamp page,
// normalizing every reported time marker and dropping the ones that do not
// parse.
func ParseAPIPage(body []byte, pageURL string) (*TimestampPage, error) {
	var movie struct {
		apiItem
		Timestamps []string `json:"timestamps"`
	}
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("decode api movie: %w", err)
	}

	seen := make(map[string]bool)
	timestamps := []string{}
	for _, raw := range movie.Timestamps {
		tc, ok := ParseTimeCode(raw)
		if !ok {
			continue
		}
		canonical := tc.String()
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		timestamps = append(timestamps, canonical)
	}

	return &TimestampPage{
		URL:        pageURL,
		Title:      movie.title(),
		Timestamps: timestamps,
	}, nil
}
