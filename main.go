package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samuelzfisch/jumpscared-backend/pkg/cache"
	"github.com/samuelzfisch/jumpscared-backend/pkg/config"
	"github.com/samuelzfisch/jumpscared-backend/pkg/scrape"
	"github.com/samuelzfisch/jumpscared-backend/pkg/server"
	"github.com/samuelzfisch/jumpscared-backend/pkg/site"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	sourceName := os.Getenv("SOURCE")
	if sourceName == "" {
		sourceName = "wheresthejump"
	}

	profile, ok := site.Lookup(sourceName)
	if !ok {
		log.Fatalf("Unknown source %q, known sources: %s", sourceName, strings.Join(site.Names(), ", "))
	}
	applyOverride(profile, cfg.Sites[sourceName])

	port := cfg.Server.Port
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid PORT %q: %v", raw, err)
		}
		port = p
	}

	client := scrape.NewClient(cfg.FetchTimeout())
	if profile.Mode == site.ModeAPI && profile.APIKeyEnv != "" {
		client.APIKey = os.Getenv(profile.APIKeyEnv)
		if client.APIKey == "" {
			log.Printf("%s not set, calling %s without an API key", profile.APIKeyEnv, profile.Label)
		}
	}

	var pageCache server.PageCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err := cache.NewRedisCache(redisURL, "jumpscared")
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		pageCache = redisCache
		log.Println("Redis cache enabled")
	} else {
		log.Println("REDIS_URL not set, caching disabled")
	}

	srv := server.New(cfg, profile, client, pageCache)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("Serving %s on :%d", profile.Label, port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// applyOverride folds deploy-time site overrides into a built-in profile.
func applyOverride(p *site.Profile, o config.SiteOverride) {
	if o.BaseURL != "" {
		p.BaseURL = o.BaseURL
	}
	if o.Domain != "" {
		p.Domain = o.Domain
	}
	if o.SearchPath != "" {
		p.SearchPath = o.SearchPath
	}
	if o.MoviePathPrefix != "" {
		p.MoviePathPrefix = o.MoviePathPrefix
	}
	if o.APIBaseURL != "" {
		p.APIBaseURL = o.APIBaseURL
	}
}
