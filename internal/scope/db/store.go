// Package db provides catalog persistence for Shelfstack.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

// Store keeps the catalog in a CSV flat file. Changes are held in memory
// until Flush.
type Store struct {
	path     string
	mu       sync.Mutex
	index    *MemIndex
	skipped  []RowError
	modified bool
}

// NewStore opens the catalog file at path, creating it with a header row
// when missing
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		path:  path,
		index: NewMemIndex(),
	}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load store: %w", err)
		}
		// New catalog: write the header so the file exists for watchers
		if err := s.write(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the catalog file path
func (s *Store) Path() string {
	return s.path
}

// Skipped returns the rows dropped by the last load
func (s *Store) Skipped() []RowError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RowError(nil), s.skipped...)
}

// All returns every book in file order
func (s *Store) All() []*book.Book {
	return s.index.All()
}

// Get returns a book by ID
func (s *Store) Get(id string) (*book.Book, error) {
	b, ok := s.index.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Add adds a book to the store, updating it if the ID exists
func (s *Store) Add(b *book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index.Set(b)
	s.modified = true
	return nil
}

// AddAll adds books in order
func (s *Store) AddAll(books []*book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range books {
		s.index.Set(b)
	}
	s.modified = s.modified || len(books) > 0
	return nil
}

// Update replaces an existing book
func (s *Store) Update(b *book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index.Has(b.ID) {
		return fmt.Errorf("%w: %s", ErrNotFound, b.ID)
	}
	s.index.Set(b)
	s.modified = true
	return nil
}

// Remove deletes a book by ID
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index.Delete(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.modified = true
	return nil
}

// Replace swaps the whole catalog
func (s *Store) Replace(books []*book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index.Reset(books)
	s.modified = true
	return nil
}

// Count returns the number of books in the store
func (s *Store) Count() int {
	return s.index.Count()
}

// Reload re-reads the catalog file, discarding unflushed changes
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return fmt.Errorf("failed to reload store: %w", err)
	}
	s.modified = false
	return nil
}

// Flush writes the store to disk
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.modified {
		return nil // No changes to write
	}

	if err := s.write(); err != nil {
		return err
	}

	s.modified = false
	return nil
}

// Close flushes and closes the store
func (s *Store) Close() error {
	return s.Flush()
}

// write replaces the catalog file through a temp file and rename
func (s *Store) write() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	_ = tmp.Chmod(0644)

	if err := EncodeCSV(tmp, s.index.All()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}

// load reads the catalog from disk
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	books, skipped, err := DecodeCSV(f)
	if err != nil {
		return err
	}

	s.index.Reset(books)
	s.skipped = skipped
	return nil
}
