package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

var (
	addYear     int
	addAdded    string
	addCover    string
	addDocument string
)

var addCmd = &cobra.Command{
	Use:   "add [title] [author] [genre]",
	Short: "Add a book to the catalog",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []book.Option{
			book.WithCoverImage(addCover),
			book.WithDocument(addDocument),
		}
		if addAdded != "" {
			added, err := time.Parse(book.DateLayout, addAdded)
			if err != nil {
				return fmt.Errorf("invalid --added %q, want %s: %w", addAdded, book.DateLayout, err)
			}
			opts = append(opts, book.WithDateAdded(added))
		}

		b, err := book.New(args[0], args[1], args[2], addYear, opts...)
		if err != nil {
			return err
		}
		if err := books.Add(b); err != nil {
			return err
		}

		cmd.Printf("Added %s (%s)\n", b, b.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a book by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := books.Get(args[0])
		if err != nil {
			return err
		}
		if err := books.Remove(b.ID); err != nil {
			return err
		}
		cmd.Printf("Removed %s\n", b)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addYear, "year", "y", 0, "publishing year")
	addCmd.Flags().StringVar(&addAdded, "added", "", "date added ("+book.DateLayout+")")
	addCmd.Flags().StringVar(&addCover, "cover", "", "cover image path")
	addCmd.Flags().StringVar(&addDocument, "document", "", "document path")
	_ = addCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(addCmd, removeCmd)
}
