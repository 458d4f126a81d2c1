package db

import (
	"sync"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

// MemIndex is a thread-safe in-memory registry of books keyed by ID.
// Insertion order is preserved so the catalog has a stable natural order.
type MemIndex struct {
	mu    sync.RWMutex
	books map[string]*book.Book
	order []string
}

// NewMemIndex creates a new empty in-memory index
func NewMemIndex() *MemIndex {
	return &MemIndex{
		books: make(map[string]*book.Book),
	}
}

// Set adds or replaces a book. A replaced book keeps its position.
func (m *MemIndex) Set(b *book.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		m.order = append(m.order, b.ID)
	}
	m.books[b.ID] = b
}

// Delete removes a book, reporting whether it was present
func (m *MemIndex) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return false
	}
	delete(m.books, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Get retrieves a book by ID
func (m *MemIndex) Get(id string) (*book.Book, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	return b, ok
}

// Has checks if a book exists in the index
func (m *MemIndex) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.books[id]
	return ok
}

// Count returns the number of books in the index
func (m *MemIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}

// All returns all books in insertion order (copy of the slice, shared records)
func (m *MemIndex) All() []*book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*book.Book, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.books[id])
	}
	return result
}

// Reset replaces the whole content with books, in order
func (m *MemIndex) Reset(books []*book.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = make(map[string]*book.Book, len(books))
	m.order = make([]string, 0, len(books))
	for _, b := range books {
		if _, ok := m.books[b.ID]; !ok {
			m.order = append(m.order, b.ID)
		}
		m.books[b.ID] = b
	}
}

// Range iterates over all books in order
// The callback should return false to stop iteration
func (m *MemIndex) Range(fn func(b *book.Book) bool) {
	for _, b := range m.All() {
		if !fn(b) {
			break
		}
	}
}
