package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/samuelzfisch/jumpscared-backend/pkg/scrape"
	"github.com/samuelzfisch/jumpscared-backend/pkg/site"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status": "ok",
		"source": s.profile.Name,
	}
	if s.cache != nil {
		body["cache"] = "ok"
		if err := s.cache.Ping(r.Context()); err != nil {
			body["cache"] = "error"
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := scrape.NormalizeSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) < 2 {
		writeError(w, http.StatusBadRequest, `Query "q" must be at least 2 characters.`)
		return
	}

	ctx := r.Context()
	cacheKey := ""
	if s.cache != nil {
		cacheKey = s.cache.Key(s.profile.Name, "search", strings.ToLower(query))
		var cached []scrape.SearchResult
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	var (
		results []scrape.SearchResult
		err     error
	)
	if s.profile.Mode == site.ModeAPI {
		results, err = s.searchAPI(ctx, query)
	} else {
		results, err = s.searchHTML(ctx, query)
	}
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	if results == nil {
		results = []scrape.SearchResult{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, results, s.cfg.SearchTTL()); err != nil {
			log.Printf("cache write failed for %s: %v", cacheKey, err)
		}
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) searchHTML(ctx context.Context, query string) ([]scrape.SearchResult, error) {
	out, err := s.fetcher.Fetch(ctx, s.profile.SearchURL(query))
	if err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, &scrape.UpstreamError{Status: out.Status}
	}

	base, err := url.Parse(s.profile.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	return scrape.ExtractResults(out.Body, scrape.ExtractOptions{
		BaseURL:         base,
		Validator:       s.profile.Validator(),
		Strategies:      s.profile.Strategies,
		ExcludePatterns: s.profile.ExcludePatterns,
		TitleFromSlug:   s.profile.TitleFromSlug,
	})
}

func (s *Server) searchAPI(ctx context.Context, query string) ([]scrape.SearchResult, error) {
	out, err := s.fetcher.Fetch(ctx, s.profile.SearchURL(query))
	if err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, &scrape.UpstreamError{Status: out.Status}
	}

	return scrape.ParseAPIResults([]byte(out.Body), s.profile.Validator(), s.profile.MovieURL)
}

func (s *Server) handleTimestamps(w http.ResponseWriter, r *http.Request) {
	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if !s.profile.Validator().ValidMovieURL(pageURL) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s movie url.", s.profile.Label))
		return
	}

	ctx := r.Context()
	cacheKey := ""
	if s.cache != nil {
		cacheKey = s.cache.Key(s.profile.Name, "page", pageURL)
		var cached scrape.TimestampPage
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			writeJSON(w, http.StatusOK, &cached)
			return
		}
	}

	var (
		page *scrape.TimestampPage
		err  error
	)
	if s.profile.Mode == site.ModeAPI {
		page, err = s.timestampsAPI(ctx, pageURL)
	} else {
		page, err = s.timestampsHTML(ctx, pageURL)
	}
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, page, s.cfg.PageTTL()); err != nil {
			log.Printf("cache write failed for %s: %v", cacheKey, err)
		}
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) timestampsHTML(ctx context.Context, pageURL string) (*scrape.TimestampPage, error) {
	out, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, &scrape.UpstreamError{Status: out.Status}
	}

	return scrape.ExtractTimestampPage(out.Body, pageURL, scrape.PageOptions{
		TitleSelectors:  s.profile.TitleSelectors,
		TitleSuffixes:   s.profile.TitleSuffixes,
		ContentSelector: s.profile.ContentSelector,
	})
}

func (s *Server) timestampsAPI(ctx context.Context, pageURL string) (*scrape.TimestampPage, error) {
	slug := s.movieSlug(pageURL)
	if slug == "" {
		return nil, fmt.Errorf("no movie slug in %s", pageURL)
	}

	out, err := s.fetcher.Fetch(ctx, s.profile.APIMovieURL(slug))
	if err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, &scrape.UpstreamError{Status: out.Status}
	}

	return scrape.ParseAPIPage([]byte(out.Body), pageURL)
}

// movieSlug recovers the slug from an already-validated movie page URL.
func (s *Server) movieSlug(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	slug := strings.TrimPrefix(parsed.Path, s.profile.MoviePathPrefix)
	return strings.Trim(slug, "/")
}

// writeFailure maps pipeline errors onto the API's error taxonomy: upstream
// HTTP failure → 502, timeout → 500 with a timeout-specific message,
// anything else → generic 500. Validation never reaches here; it is checked
// before any fetch.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var upstream *scrape.UpstreamError

	switch {
	case errors.Is(err, scrape.ErrFetchTimeout):
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Request to %s timed out.", s.profile.Label))
	case errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Upstream request failed with status %d.", upstream.Status))
	default:
		log.Printf("unexpected failure: %v", err)
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
