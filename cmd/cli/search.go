package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Finds books whose title, author, genre, publishing year or
date added contains the query, ignoring case.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, strings.Join(args, " "))
	},
}

func init() {
	addQueryFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
