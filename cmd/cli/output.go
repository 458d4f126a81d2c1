package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

func outputJSON(cmd *cobra.Command, page catalog.Page) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputTable(cmd *cobra.Command, page catalog.Page) {
	if page.Total == 0 {
		cmd.Println("No books found.")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Title", "Author", "Genre", "Year", "Added", "ID").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, b := range page.Books {
		t.Row(b.Title, b.Author, b.Genre, strconv.Itoa(b.PublishingYear), b.DateAddedText(), b.ID)
	}

	cmd.Println(t.Render())
	cmd.Println(statusStyle.Render(statusLine(page)))
	if page.TotalPages > 1 {
		cmd.Println(pager(page))
	}
}

func statusLine(page catalog.Page) string {
	return fmt.Sprintf("%d books total | Page %d of %d", page.Total, page.Number, page.TotalPages)
}

// pager renders the page buttons, with ... for gaps
func pager(page catalog.Page) string {
	var parts []string
	if page.HasPrev() {
		parts = append(parts, "<")
	}
	for _, n := range catalog.Window(page.Number, page.TotalPages) {
		switch {
		case n == 0:
			parts = append(parts, "...")
		case n == page.Number:
			parts = append(parts, currentStyle.Render(strconv.Itoa(n)))
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if page.HasNext() {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}
