package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samuelzfisch/jumpscared-backend/pkg/config"
	"github.com/samuelzfisch/jumpscared-backend/pkg/scrape"
	"github.com/samuelzfisch/jumpscared-backend/pkg/site"
)

// Fetcher retrieves one remote document under a bounded timeout.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (scrape.FetchOutcome, error)
}

// PageCache is a TTL cache sitting in front of upstream fetches. The handlers
// treat every cache failure as a miss and fall back to a live fetch.
type PageCache interface {
	Key(parts ...string) string
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Server exposes one source site's search results and timestamp pages over a
// small JSON API. All request state is per-call; the only shared pieces are
// the immutable profile/config and the optional cache client.
type Server struct {
	cfg     *config.Config
	profile *site.Profile
	fetcher Fetcher
	cache   PageCache
}

// New wires a server for one site profile. c may be nil to run without a
// cache.
func New(cfg *config.Config, profile *site.Profile, fetcher Fetcher, c PageCache) *Server {
	return &Server{
		cfg:     cfg,
		profile: profile,
		fetcher: fetcher,
		cache:   c,
	}
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)
	mux.Use(allowCORS)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Get("/timestamps", s.handleTimestamps)
	})

	return mux
}

// allowCORS opens the read-only API to browser clients.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
