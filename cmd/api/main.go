// Package main implements the HTTP API server for Shelfstack.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	apihttp "github.com/dsjohal14/shelfstack/internal/http"
	"github.com/dsjohal14/shelfstack/internal/libs/config"
	"github.com/dsjohal14/shelfstack/internal/libs/obs"
	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
	"github.com/dsjohal14/shelfstack/internal/scope/db"
	"github.com/dsjohal14/shelfstack/internal/streamlite"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	// Postgres when DATABASE_URL is set, the CSV file otherwise
	store, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer func() { _ = store.Close() }()

	books := catalog.New(store, logger)
	logger.Info().Int("book_count", books.Count()).Msg("catalog loaded")

	if cfg.Watch && cfg.DatabaseURL == "" {
		watcher := streamlite.NewFileWatcher(cfg.CatalogPath, 0, books.Reload, obs.Logger("watcher"))
		if err := watcher.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start catalog watcher")
		}
		defer func() { _ = watcher.Stop() }()
	}

	// Create HTTP handler
	handler := apihttp.NewHandler(books, logger, cfg.PageSize)

	// Setup router
	r := setupRouter(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupRouter(h *apihttp.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	r.Get("/health", h.HandleHealth)
	r.Post("/search", h.HandleSearch)
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.HandleListBooks)
		r.Post("/", h.HandleAddBook)
		r.Get("/{id}", h.HandleGetBook)
		r.Put("/{id}", h.HandleUpdateBook)
		r.Delete("/{id}", h.HandleDeleteBook)
	})

	return r
}

func initStore(cfg *config.Config, logger zerolog.Logger) (db.Storage, error) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := db.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info().Int("book_count", store.Count()).Msg("using Postgres catalog")
		return store, nil
	}

	store, err := db.NewStore(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, skipped := range store.Skipped() {
		logger.Warn().Err(skipped.Err).Int("line", skipped.Line).Msg("skipped catalog row")
	}
	logger.Info().Str("path", store.Path()).Msg("using CSV catalog")
	return store, nil
}
