package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractOptions() ExtractOptions {
	base, _ := url.Parse("https://wheresthejump.com")
	return ExtractOptions{
		BaseURL:   base,
		Validator: NewValidator("wheresthejump.com", "/jump-scares-in-"),
		Strategies: []Strategy{
			{Name: "entry title anchor", Selector: "article .entry-title a"},
			{Name: "article anchor", Selector: "article a"},
			{Name: "any anchor", Selector: "a"},
		},
		ExcludePatterns: []string{"/?s=", "/tag/", "/category/"},
	}
}

func TestExtractResults_SpecificStrategyWins(t *testing.T) {
	html := `
	<article>
		<h2 class="entry-title"><a href="/jump-scares-in-it-2017/">It (2017)</a></h2>
		<a href="/jump-scares-in-unrelated/">sidebar link</a>
	</article>`

	results, err := ExtractResults(html, testExtractOptions())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "It (2017)", results[0].Title)
	assert.Equal(t, "https://wheresthejump.com/jump-scares-in-it-2017/", results[0].URL)
}

func TestExtractResults_FallsThroughEmptyStrategies(t *testing.T) {
	// No article markup at all: only the generic anchor strategy matches.
	html := `<div><a href="https://wheresthejump.com/jump-scares-in-the-nun/">The Nun</a></div>`

	results, err := ExtractResults(html, testExtractOptions())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "The Nun", results[0].Title)
}

func TestExtractResults_RejectsForeignAndExcludedURLs(t *testing.T) {
	html := `
	<article>
		<h2 class="entry-title"><a href="https://other-site.com/jump-scares-in-it-2017/">It</a></h2>
		<h2 class="entry-title"><a href="/tag/horror/">Horror tag</a></h2>
		<h2 class="entry-title"><a href="/?s=it">Search again</a></h2>
		<h2 class="entry-title"><a href="/about/">About</a></h2>
		<h2 class="entry-title"><a href="/jump-scares-in-sinister/">Sinister</a></h2>
	</article>`

	results, err := ExtractResults(html, testExtractOptions())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Sinister", results[0].Title)
}

func TestExtractResults_DedupesByURL(t *testing.T) {
	html := `
	<article>
		<h2 class="entry-title"><a href="/jump-scares-in-it-2017/">It (2017)</a></h2>
		<h2 class="entry-title"><a href="/jump-scares-in-it-2017/">It again</a></h2>
	</article>
	<a href="/jump-scares-in-it-2017/">It once more</a>`

	results, err := ExtractResults(html, testExtractOptions())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "It (2017)", results[0].Title)
}

func TestExtractResults_CapsAtTen(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, `<article><h2 class="entry-title"><a href="/jump-scares-in-movie-%d/">Movie %d</a></h2></article>`, i, i)
	}

	results, err := ExtractResults(sb.String(), testExtractOptions())
	require.NoError(t, err)

	assert.Len(t, results, MaxResults)
	assert.Equal(t, "Movie 0", results[0].Title)
	assert.Equal(t, "Movie 9", results[9].Title)
}

func TestExtractResults_TitleBackfilledFromSlug(t *testing.T) {
	// Image-only card: no visible anchor text.
	html := `<article><a href="/jump-scares-in-the-conjuring/"><img src="poster.jpg"></a></article>`

	opts := testExtractOptions()
	results, err := ExtractResults(html, opts)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "jump scares in the conjuring", results[0].Title)

	opts.TitleFromSlug = func(slug string) string {
		return strings.ToUpper(strings.TrimPrefix(slug, "jump-scares-in-"))
	}
	results, err = ExtractResults(html, opts)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "THE-CONJURING", results[0].Title)
}

func TestExtractResults_EmptyDocument(t *testing.T) {
	results, err := ExtractResults("", testExtractOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}
