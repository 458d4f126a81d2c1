package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/dsjohal14/shelfstack/internal/libs/accel"
	"github.com/dsjohal14/shelfstack/internal/scope/book"
	"github.com/dsjohal14/shelfstack/internal/scope/db"
)

var (
	importReplace   bool
	importBatchSize int
)

var importCmd = &cobra.Command{
	Use:   "import [pattern...]",
	Short: "Import books from CSV files",
	Long: `Reads every CSV file matching the given glob patterns and adds
their books to the catalog. Patterns support ** for recursive matches,
for example "exports/**/*.csv". Rows that fail to parse are reported
and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the catalog instead of appending")
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", accel.DefaultBatchSize, "books per write")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no files matched")
	}

	var imported []*book.Book
	for _, path := range files {
		parsed, skipped, err := readCSV(path)
		if err != nil {
			return err
		}
		for _, rowErr := range skipped {
			cmd.PrintErrf("%s: %v\n", path, rowErr)
		}
		imported = append(imported, parsed...)
	}

	if importReplace {
		if err := books.Replace(imported); err != nil {
			return err
		}
		cmd.Printf("Replaced catalog with %d books from %d files\n", len(imported), len(files))
		return nil
	}

	for _, chunk := range accel.Chunk(accel.NewBatch(importBatchSize), imported) {
		if err := books.Import(chunk); err != nil {
			return err
		}
		logger.Debug().Int("books", len(chunk)).Msg("imported batch")
	}

	cmd.Printf("Imported %d books from %d files\n", len(imported), len(files))
	return nil
}

// expandPatterns resolves each glob and drops duplicate paths
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func readCSV(path string) ([]*book.Book, []db.RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	parsed, skipped, err := db.DecodeCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parsed, skipped, nil
}
