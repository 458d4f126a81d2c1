// Package main implements the Shelfstack CLI for browsing and editing the
// book catalog from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dsjohal14/shelfstack/internal/libs/config"
	"github.com/dsjohal14/shelfstack/internal/libs/obs"
	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
	"github.com/dsjohal14/shelfstack/internal/scope/db"
)

var (
	cfg      *config.Config
	store    db.Storage
	books    *catalog.Catalog
	logger   zerolog.Logger
	flagPath string
)

var rootCmd = &cobra.Command{
	Use:           "shelfstack",
	Short:         "Shelfstack book catalog CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagPath != "" {
			cfg.CatalogPath = flagPath
		}

		obs.InitLogger(cfg.LogLevel)
		logger = obs.Logger("cli")

		store, err = openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		books = catalog.New(store, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "catalog", "c", "", "path to the catalog CSV file")
}

// openStore picks Postgres when a database URL is configured and the CSV
// file otherwise
func openStore(ctx context.Context, cfg *config.Config) (db.Storage, error) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return db.NewPGStore(ctx, cfg.DatabaseURL)
	}

	s, err := db.NewStore(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, skipped := range s.Skipped() {
		logger.Warn().Err(skipped.Err).Int("line", skipped.Line).Msg("skipped catalog row")
	}
	return s, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
