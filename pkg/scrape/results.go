package scrape

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxResults caps every result list returned by the extractors.
const MaxResults = 10

// SearchResult is one movie page discovered on the source site.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Strategy is one way of locating result anchors in a document. Strategies
// are tried in priority order, most specific first, until enough results have
// been accepted.
type Strategy struct {
	Name     string
	Selector string
}

// ExtractOptions configures one HTML extraction call.
type ExtractOptions struct {
	// BaseURL resolves relative hrefs.
	BaseURL *url.URL

	// Validator rejects candidates that leave the source site or its movie
	// path.
	Validator *Validator

	// Strategies are applied in order with early termination at MaxResults.
	Strategies []Strategy

	// ExcludePatterns reject candidates whose resolved URL contains any of
	// these substrings (the search page itself, tag and category listings).
	ExcludePatterns []string

	// TitleFromSlug backfills a title from the URL's final path segment when
	// the anchor has no visible text, e.g. image-only cards. Optional; when
	// nil a plain hyphens-to-spaces fallback is used.
	TitleFromSlug func(slug string) string
}

// ExtractResults applies the selector strategies to html in order, validating
// and deduplicating each candidate, and returns at most MaxResults accepted
// results in discovery order.
func ExtractResults(html string, opts ExtractOptions) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	seen := make(map[string]bool)
	results := make([]SearchResult, 0, MaxResults)

	for _, strat := range opts.Strategies {
		before := len(results)
		doc.Find(strat.Selector).Each(func(_ int, s *goquery.Selection) {
			if len(results) >= MaxResults {
				return
			}

			href, ok := s.Attr("href")
			if !ok || href == "" {
				return
			}

			resolved := resolveHref(opts.BaseURL, href)
			if resolved == "" || seen[resolved] {
				return
			}
			if !opts.Validator.ValidMovieURL(resolved) {
				return
			}
			if matchesAny(resolved, opts.ExcludePatterns) {
				return
			}

			title := NormalizeSpace(s.Text())
			if title == "" {
				title = opts.titleFromSlug(lastPathSegment(resolved))
			}
			if title == "" {
				return
			}

			seen[resolved] = true
			results = append(results, SearchResult{Title: title, URL: resolved})
		})

		if accepted := len(results) - before; accepted > 0 {
			log.Printf("strategy %q accepted %d results", strat.Name, accepted)
		}

		if len(results) >= MaxResults {
			break
		}
	}

	return results, nil
}

func (o ExtractOptions) titleFromSlug(slug string) string {
	if slug == "" {
		return ""
	}
	if o.TitleFromSlug != nil {
		return o.TitleFromSlug(slug)
	}
	return NormalizeSpace(strings.ReplaceAll(slug, "-", " "))
}

func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func matchesAny(resolved string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(resolved, p) {
			return true
		}
	}
	return false
}

func lastPathSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}
