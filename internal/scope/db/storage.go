package db

import (
	"errors"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

// ErrNotFound is returned when no book has the requested ID
var ErrNotFound = errors.New("book not found")

// Storage is the interface for catalog persistence
// Both Store (CSV file) and PGStore (Postgres) implement this interface
type Storage interface {
	// All returns every book in catalog order
	All() []*book.Book

	// Get returns the book with the given ID
	Get(id string) (*book.Book, error)

	// Add adds a book, replacing one with the same ID
	Add(b *book.Book) error

	// AddAll adds books in one operation
	AddAll(books []*book.Book) error

	// Update replaces an existing book; ErrNotFound if absent
	Update(b *book.Book) error

	// Remove deletes a book by ID; ErrNotFound if absent
	Remove(id string) error

	// Replace swaps the whole catalog for books
	Replace(books []*book.Book) error

	// Count returns the number of books
	Count() int

	// Flush persists any pending changes
	Flush() error

	// Close flushes and closes the storage
	Close() error
}

// Ensure both Store and PGStore implement Storage
var _ Storage = (*Store)(nil)
var _ Storage = (*PGStore)(nil)
