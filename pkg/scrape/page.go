package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TimestampPage is the normalized view of one movie page: its canonical
// timestamps plus a page title.
type TimestampPage struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Timestamps []string `json:"timestamps"`
}

// PageOptions configures one timestamp page extraction.
type PageOptions struct {
	// TitleSelectors are tried in order; the first selection with non-empty
	// text wins. After them the og:title meta and the document title are
	// consulted.
	TitleSelectors []string

	// TitleSuffixes are site-name suffixes stripped from a document title,
	// e.g. " | Where's The Jump?".
	TitleSuffixes []string

	// ContentSelector scopes the timestamp scan. When empty or unmatched the
	// whole body text is scanned.
	ContentSelector string
}

// ExtractTimestampPage pulls the title and every canonical timestamp out of a
// fetched movie page.
func ExtractTimestampPage(html, pageURL string, opts PageOptions) (*TimestampPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse movie page: %w", err)
	}

	text := doc.Find("body").Text()
	if opts.ContentSelector != "" {
		if content := doc.Find(opts.ContentSelector); content.Length() > 0 {
			text = content.Text()
		}
	}

	timestamps := ExtractTimestamps(NormalizeSpace(text))
	if timestamps == nil {
		timestamps = []string{}
	}

	return &TimestampPage{
		URL:        pageURL,
		Title:      extractTitle(doc, opts),
		Timestamps: timestamps,
	}, nil
}

func extractTitle(doc *goquery.Document, opts PageOptions) string {
	for _, sel := range opts.TitleSelectors {
		if title := NormalizeSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}

	if content, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if title := NormalizeSpace(content); title != "" {
			return title
		}
	}

	title := NormalizeSpace(doc.Find("title").First().Text())
	for _, suffix := range opts.TitleSuffixes {
		title = strings.TrimSuffix(title, suffix)
	}
	return strings.TrimSpace(title)
}
