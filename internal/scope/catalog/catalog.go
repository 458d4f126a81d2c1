// Package catalog owns the live book collection and keeps its search index
// in step with storage.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
	"github.com/dsjohal14/shelfstack/internal/scope/db"
	"github.com/dsjohal14/shelfstack/internal/scope/order"
	"github.com/dsjohal14/shelfstack/internal/scope/search"
)

// ErrNotFound is returned when no book has the requested ID
var ErrNotFound = db.ErrNotFound

// Reloader is implemented by storages that can re-read their backing data
type Reloader interface {
	Reload() error
}

// Catalog is the collection owner. Every mutation goes through storage and
// then rebuilds the search index under the write lock, on success and on
// failure alike, so queries never see a stale index.
type Catalog struct {
	mu     sync.RWMutex
	store  db.Storage
	index  *search.Index
	logger zerolog.Logger
}

// New builds a catalog over store and indexes its current content
func New(store db.Storage, logger zerolog.Logger) *Catalog {
	c := &Catalog{
		store:  store,
		logger: logger,
	}
	c.rebuild()
	return c
}

// Count returns the number of books
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Len()
}

// Get returns a book by ID
func (c *Catalog) Get(id string) (*book.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Get(id)
}

// Add validates and stores a new book
func (c *Catalog) Add(b *book.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.rebuild()

	before := c.store.All()
	if err := c.store.Add(b); err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}
	if err := c.commit(before); err != nil {
		return err
	}

	c.logger.Info().Str("book_id", b.ID).Str("title", b.Title).Msg("book added")
	return nil
}

// Update replaces the book with the given ID. The stored record is swapped
// for a new instance; records already handed out are left as they were.
// A zero DateAdded keeps the stored value.
func (c *Catalog) Update(id string, b *book.Book) error {
	next := b.Clone()
	next.ID = id

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.store.Get(id)
	if err != nil {
		return err
	}
	if next.DateAdded.IsZero() {
		next.DateAdded = current.DateAdded
	}
	if err := next.Validate(); err != nil {
		return err
	}

	defer c.rebuild()
	before := c.store.All()
	if err := c.store.Update(next); err != nil {
		return err
	}
	if err := c.commit(before); err != nil {
		return err
	}

	c.logger.Info().Str("book_id", id).Msg("book updated")
	return nil
}

// Remove deletes the book with the given ID
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.rebuild()

	before := c.store.All()
	if err := c.store.Remove(id); err != nil {
		return err
	}
	if err := c.commit(before); err != nil {
		return err
	}

	c.logger.Info().Str("book_id", id).Msg("book removed")
	return nil
}

// Import merges books into the catalog. Books with an existing ID replace
// the stored record; books without one get a fresh ID.
func (c *Catalog) Import(books []*book.Book) error {
	for _, b := range books {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("book %q: %w", b.Title, err)
		}
	}
	for _, b := range books {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.rebuild()

	before := c.store.All()
	if err := c.store.AddAll(books); err != nil {
		return fmt.Errorf("failed to import books: %w", err)
	}
	if err := c.commit(before); err != nil {
		return err
	}

	c.logger.Info().Int("imported", len(books)).Msg("books imported")
	return nil
}

// Replace swaps the whole collection (bulk load)
func (c *Catalog) Replace(books []*book.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.rebuild()

	before := c.store.All()
	if err := c.store.Replace(books); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return c.commit(before)
}

// Reload re-reads storage, when it supports it, and rebuilds the index
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.store.(Reloader); ok {
		if err := r.Reload(); err != nil {
			return err
		}
	}
	c.rebuild()
	return nil
}

// Query filters, sorts and paginates the collection. Without a sort
// selector the result is ordered by title ascending.
func (c *Catalog) Query(q Query) Page {
	field := order.ParseField(q.SortBy)

	c.mu.RLock()
	results := c.index.SearchSorted(q.Text, field, !q.Descending)
	c.mu.RUnlock()

	return Paginate(results, q.Page, q.PerPage)
}

// commit flushes pending store changes. When the flush fails the store is
// rolled back to before, so a failed mutation never reaches disk later.
// Must be called with the write lock held.
func (c *Catalog) commit(before []*book.Book) error {
	if err := c.store.Flush(); err != nil {
		if rbErr := c.store.Replace(before); rbErr != nil {
			c.logger.Error().Err(rbErr).Msg("failed to roll back catalog")
		}
		return fmt.Errorf("failed to flush catalog: %w", err)
	}
	return nil
}

// rebuild must be called with the write lock held
func (c *Catalog) rebuild() {
	start := time.Now()
	c.index = search.Build(c.store.All())
	c.logger.Debug().
		Int("books", c.index.Len()).
		Int("tokens", c.index.TokenCount()).
		Dur("took", time.Since(start)).
		Msg("search index rebuilt")
}
