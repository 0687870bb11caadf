package site

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samuelzfisch/jumpscared-backend/pkg/scrape"
)

// Mode selects how a source site is consumed.
type Mode string

const (
	// ModeHTML scrapes rendered pages with selector strategies.
	ModeHTML Mode = "html"
	// ModeAPI calls a structured JSON API.
	ModeAPI Mode = "api"
)

// Profile describes one third-party source site. A service instance serves
// exactly one profile; profiles are immutable after startup.
type Profile struct {
	Name  string
	Label string
	Mode  Mode

	// BaseURL is the site origin pages are fetched from and relative hrefs
	// resolve against.
	BaseURL string

	// Domain is the exact host movie URLs must carry.
	Domain string

	// SearchPath is the site's search endpoint with a %s slot for the
	// escaped query.
	SearchPath string

	// MoviePathPrefix is the path every movie page starts with.
	MoviePathPrefix string

	// SlugTrimPrefix is stripped off a movie slug before it is turned into a
	// display title (e.g. the "jump-scares-in-" slug preamble).
	SlugTrimPrefix string

	// SlugStopwords stay lowercase when a title is derived from a slug.
	SlugStopwords []string

	Strategies      []scrape.Strategy
	ExcludePatterns []string
	TitleSelectors  []string
	TitleSuffixes   []string
	ContentSelector string

	// API-mode fields.
	APIBaseURL string
	APIKeyEnv  string
}

// SearchURL builds the upstream search URL for a query. In API mode this is
// the structured search endpoint.
func (p *Profile) SearchURL(query string) string {
	base := p.BaseURL
	if p.Mode == ModeAPI {
		base = p.APIBaseURL
	}
	return base + fmt.Sprintf(p.SearchPath, url.QueryEscape(query))
}

// MovieURL composes the public movie page URL for a slug.
func (p *Profile) MovieURL(slug string) string {
	return p.BaseURL + p.MoviePathPrefix + slug + "/"
}

// APIMovieURL composes the structured movie endpoint for a slug.
func (p *Profile) APIMovieURL(slug string) string {
	return p.APIBaseURL + "/v1/movies/" + url.PathEscape(slug)
}

// Validator returns the URL validator bound to this site.
func (p *Profile) Validator() *scrape.Validator {
	return scrape.NewValidator(p.Domain, p.MoviePathPrefix)
}

// TitleFromSlug derives a display title from a movie slug: the slug preamble
// is trimmed, hyphens become spaces and words are title-cased except for the
// profile's stopwords, which stay lowercase unless they lead the title.
func (p *Profile) TitleFromSlug(slug string) string {
	slug = strings.TrimPrefix(slug, p.SlugTrimPrefix)
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' })

	stop := make(map[string]bool, len(p.SlugStopwords))
	for _, w := range p.SlugStopwords {
		stop[strings.ToLower(w)] = true
	}

	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && stop[lower] {
			words[i] = lower
			continue
		}
		words[i] = titleCaseWord(lower)
	}

	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// builtin holds the supported source sites. These replace what used to be
// one hand-rolled server per site.
var builtin = map[string]*Profile{
	"wheresthejump": {
		Name:            "wheresthejump",
		Label:           "Where's The Jump",
		Mode:            ModeHTML,
		BaseURL:         "https://wheresthejump.com",
		Domain:          "wheresthejump.com",
		SearchPath:      "/?s=%s",
		MoviePathPrefix: "/jump-scares-in-",
		SlugTrimPrefix:  "jump-scares-in-",
		SlugStopwords:   []string{"a", "an", "and", "in", "of", "the", "to"},
		Strategies: []scrape.Strategy{
			{Name: "entry title anchor", Selector: "article .entry-title a"},
			{Name: "post title anchor", Selector: "h2.entry-title a, h3.entry-title a"},
			{Name: "article anchor", Selector: "article a"},
			{Name: "any anchor", Selector: "a"},
		},
		ExcludePatterns: []string{"/?s=", "/tag/", "/category/", "/page/"},
		TitleSelectors:  []string{"h1.entry-title", "article h1"},
		TitleSuffixes:   []string{" | Where's The Jump?", " - Where's The Jump?"},
		ContentSelector: "article",
	},
	"jumpscareradar": {
		Name:            "jumpscareradar",
		Label:           "Jump Scare Radar",
		Mode:            ModeHTML,
		BaseURL:         "https://jumpscareradar.com",
		Domain:          "jumpscareradar.com",
		SearchPath:      "/search?q=%s",
		MoviePathPrefix: "/movies/",
		SlugStopwords:   []string{"a", "an", "and", "in", "of", "the", "to"},
		Strategies: []scrape.Strategy{
			{Name: "result card anchor", Selector: ".search-results .movie-card a"},
			{Name: "movie list anchor", Selector: ".movie-list a"},
			{Name: "any anchor", Selector: "a"},
		},
		ExcludePatterns: []string{"/search?", "/tags/", "/genres/"},
		TitleSelectors:  []string{"h1.movie-title", "main h1"},
		TitleSuffixes:   []string{" – Jump Scare Radar"},
		ContentSelector: ".scare-list",
	},
	"scaredb": {
		Name:            "scaredb",
		Label:           "ScareDB",
		Mode:            ModeAPI,
		BaseURL:         "https://scaredb.com",
		Domain:          "scaredb.com",
		SearchPath:      "/v1/search?q=%s",
		MoviePathPrefix: "/movies/",
		APIBaseURL:      "https://api.scaredb.com",
		APIKeyEnv:       "SCAREDB_API_KEY",
	},
}

// Lookup returns the named built-in profile.
func Lookup(name string) (*Profile, bool) {
	p, ok := builtin[name]
	return p, ok
}

// Names lists the built-in profile names for error messages.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	return names
}
