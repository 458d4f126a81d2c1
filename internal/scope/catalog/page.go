package catalog

import "github.com/dsjohal14/shelfstack/internal/scope/book"

// DefaultPerPage is the number of rows on one page
const DefaultPerPage = 25

// maxButtons is the page count up to which Window lists every page
const maxButtons = 7

// Query selects, orders and pages catalog entries. A blank Text matches
// every book; a blank or unknown SortBy orders by title.
type Query struct {
	Text       string
	SortBy     string
	Descending bool
	Page       int
	PerPage    int
}

// Page is one slice of a query result
type Page struct {
	Books      []*book.Book `json:"books"`
	Number     int          `json:"page"`
	PerPage    int          `json:"per_page"`
	Total      int          `json:"total"`
	TotalPages int          `json:"total_pages"`
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// Paginate slices results into the requested page. The page number is
// clamped into [1, TotalPages] and there is always at least one page.
func Paginate(results []*book.Book, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(results)
	totalPages := max(1, (total+perPage-1)/perPage)
	page = max(1, min(page, totalPages))

	start := (page - 1) * perPage
	end := min(start+perPage, total)

	books := make([]*book.Book, 0, end-start)
	books = append(books, results[start:end]...)

	return Page{
		Books:      books,
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Window lists the page buttons to show around current. Small page counts
// list every page; larger ones show the first and last page, the neighbours
// of current, and 0 where pages are elided.
func Window(current, totalPages int) []int {
	if totalPages <= maxButtons {
		out := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			out = append(out, i)
		}
		return out
	}

	out := []int{1}
	if current-1 > 2 {
		out = append(out, 0)
	}
	for i := max(2, current-1); i <= min(totalPages-1, current+1); i++ {
		out = append(out, i)
	}
	if current+1 < totalPages-1 {
		out = append(out, 0)
	}
	return append(out, totalPages)
}
