// Package main implements the catalog watcher. It keeps a loaded catalog in
// step with edits made to the CSV file by other tools and logs each reload.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/dsjohal14/shelfstack/internal/libs/config"
	"github.com/dsjohal14/shelfstack/internal/libs/obs"
	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
	"github.com/dsjohal14/shelfstack/internal/scope/db"
	"github.com/dsjohal14/shelfstack/internal/streamlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("worker")

	store, err := db.NewStore(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog")
	}
	defer func() { _ = store.Close() }()

	books := catalog.New(store, logger)

	watcher := streamlite.NewFileWatcher(cfg.CatalogPath, 0, func() error {
		if err := books.Reload(); err != nil {
			return err
		}
		logger.Info().
			Int("book_count", books.Count()).
			Int("skipped", len(store.Skipped())).
			Msg("catalog reloaded")
		return nil
	}, logger)
	if err := watcher.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start watcher")
	}

	logger.Info().Str("path", cfg.CatalogPath).Int("book_count", books.Count()).Msg("worker started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := watcher.Stop(); err != nil {
		logger.Error().Err(err).Msg("failed to stop watcher")
	}
	logger.Info().Msg("worker stopped")
}
