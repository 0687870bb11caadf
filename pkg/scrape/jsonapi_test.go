package scrape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaredbValidator() *Validator {
	return NewValidator("scaredb.com", "/movies/")
}

func scaredbMovieURL(slug string) string {
	return "https://scaredb.com/movies/" + slug + "/"
}

func TestParseAPIResults_BareArray(t *testing.T) {
	body := []byte(`[
		{"title": "It", "year": 2017, "url": "https://scaredb.com/movies/it-2017/"},
		{"name": "The Nun", "slug": "the-nun"}
	]`)

	results, err := ParseAPIResults(body, scaredbValidator(), scaredbMovieURL)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, SearchResult{Title: "It (2017)", URL: "https://scaredb.com/movies/it-2017/"}, results[0])
	assert.Equal(t, SearchResult{Title: "The Nun", URL: "https://scaredb.com/movies/the-nun/"}, results[1])
}

func TestParseAPIResults_ResultsEnvelope(t *testing.T) {
	body := []byte(`{"results": [{"title": "Smile", "slug": "smile", "year": 2022}]}`)

	results, err := ParseAPIResults(body, scaredbValidator(), scaredbMovieURL)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Smile (2022)", results[0].Title)
	assert.Equal(t, "https://scaredb.com/movies/smile/", results[0].URL)
}

func TestParseAPIResults_RejectsUnusableItems(t *testing.T) {
	body := []byte(`[
		{"title": "", "slug": "no-title"},
		{"title": "No URL at all"},
		{"title": "Foreign", "url": "https://evil.com/movies/foreign/"},
		{"title": "HTTP only", "url": "http://scaredb.com/movies/http-only/"},
		{"title": "Kept", "slug": "kept"}
	]`)

	results, err := ParseAPIResults(body, scaredbValidator(), scaredbMovieURL)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Kept", results[0].Title)
}

func TestParseAPIResults_DedupesAndCaps(t *testing.T) {
	items := `{"title": "Dup", "url": "https://scaredb.com/movies/dup/"},`
	for i := 0; i < 14; i++ {
		items += fmt.Sprintf(`{"title": "Movie %d", "slug": "movie-%d"},`, i, i)
	}
	body := []byte("[" + items + `{"title": "Dup", "url": "https://scaredb.com/movies/dup/"}]`)

	results, err := ParseAPIResults(body, scaredbValidator(), scaredbMovieURL)
	require.NoError(t, err)

	assert.Len(t, results, MaxResults)
	assert.Equal(t, "Dup", results[0].Title)
}

func TestParseAPIResults_Malformed(t *testing.T) {
	_, err := ParseAPIResults([]byte(`not json`), scaredbValidator(), scaredbMovieURL)
	require.Error(t, err)

	_, err = ParseAPIResults([]byte(`{"other": true}`), scaredbValidator(), scaredbMovieURL)
	require.NoError(t, err) // envelope without results decodes to zero items
}

func TestParseAPIPage(t *testing.T) {
	body := []byte(`{
		"title": "It",
		"year": 2017,
		"timestamps": ["4:33", "21:05", "1:12:03", "4:33", "9:99"]
	}`)

	page, err := ParseAPIPage(body, "https://scaredb.com/movies/it-2017/")
	require.NoError(t, err)

	assert.Equal(t, "It (2017)", page.Title)
	assert.Equal(t, "https://scaredb.com/movies/it-2017/", page.URL)
	assert.Equal(t, []string{"00:04:33", "00:21:05", "01:12:03"}, page.Timestamps)
}

func TestParseAPIPage_Malformed(t *testing.T) {
	_, err := ParseAPIPage([]byte(`[]`), "https://scaredb.com/movies/x/")
	require.Error(t, err)
}
