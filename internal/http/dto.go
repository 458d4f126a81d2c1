// Package httpapi provides HTTP handlers and data transfer objects for the Shelfstack API.
package httpapi

import (
	"time"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	BookCount int    `json:"book_count"`
}

// BookRequest is the payload for creating or replacing a book
type BookRequest struct {
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Genre          string    `json:"genre"`
	PublishingYear int       `json:"publishing_year"`
	DateAdded      time.Time `json:"date_added,omitempty"` // Auto-set if not provided
	CoverImagePath string    `json:"cover_image_path,omitempty"`
	DocumentPath   string    `json:"document_path,omitempty"`
}

// Book is the API representation of a catalog entry
type Book struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Genre          string    `json:"genre"`
	PublishingYear int       `json:"publishing_year"`
	DateAdded      time.Time `json:"date_added"`
	CoverImagePath string    `json:"cover_image_path,omitempty"`
	DocumentPath   string    `json:"document_path,omitempty"`
}

// SearchRequest represents search request
type SearchRequest struct {
	Query     string `json:"query"`
	Sort      string `json:"sort,omitempty"`      // title, author, genre, publishing_year, date_added
	Ascending *bool  `json:"ascending,omitempty"` // Default: true
	Page      int    `json:"page,omitempty"`      // Default: 1
	PerPage   int    `json:"per_page,omitempty"`  // Default: configured page size
}

// PageResponse represents one page of a query result
type PageResponse struct {
	Books      []Book `json:"books"`
	Query      string `json:"query"`
	Sort       string `json:"sort"`
	Ascending  bool   `json:"ascending"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func toBook(b *book.Book) Book {
	return Book{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Genre:          b.Genre,
		PublishingYear: b.PublishingYear,
		DateAdded:      b.DateAdded,
		CoverImagePath: b.CoverImagePath,
		DocumentPath:   b.DocumentPath,
	}
}

func toPageResponse(q catalog.Query, field string, p catalog.Page) PageResponse {
	books := make([]Book, len(p.Books))
	for i, b := range p.Books {
		books[i] = toBook(b)
	}
	return PageResponse{
		Books:      books,
		Query:      q.Text,
		Sort:       field,
		Ascending:  !q.Descending,
		Page:       p.Number,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}
