package main

import (
	"github.com/spf13/cobra"

	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
)

var (
	listSort    string
	listDesc    bool
	listPage    int
	listPerPage int
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the catalog",
	Long: `Lists the catalog one page at a time.
Sort keys: title, author, genre, publishing_year, date_added.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, "")
	},
}

func init() {
	addQueryFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&listSort, "sort", "s", "title", "sort key")
	cmd.Flags().BoolVarP(&listDesc, "desc", "d", false, "sort descending")
	cmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&listPerPage, "per-page", "n", 0, "books per page (default from config)")
	cmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
}

func runQuery(cmd *cobra.Command, text string) error {
	perPage := listPerPage
	if perPage <= 0 {
		perPage = cfg.PageSize
	}

	page := books.Query(catalog.Query{
		Text:       text,
		SortBy:     listSort,
		Descending: listDesc,
		Page:       listPage,
		PerPage:    perPage,
	})

	if listJSON {
		return outputJSON(cmd, page)
	}
	outputTable(cmd, page)
	return nil
}
