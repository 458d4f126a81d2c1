package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dsjohal14/shelfstack/internal/libs/accel"
	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS books (
	id               TEXT PRIMARY KEY,
	position         BIGSERIAL,
	title            TEXT NOT NULL,
	author           TEXT NOT NULL,
	genre            TEXT NOT NULL,
	publishing_year  INTEGER NOT NULL,
	date_added       TIMESTAMPTZ NOT NULL,
	cover_image_path TEXT NOT NULL DEFAULT '',
	document_path    TEXT NOT NULL DEFAULT ''
)`

const upsertSQL = `
INSERT INTO books (id, title, author, genre, publishing_year, date_added, cover_image_path, document_path)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	author = EXCLUDED.author,
	genre = EXCLUDED.genre,
	publishing_year = EXCLUDED.publishing_year,
	date_added = EXCLUDED.date_added,
	cover_image_path = EXCLUDED.cover_image_path,
	document_path = EXCLUDED.document_path`

const updateSQL = `
UPDATE books SET title = $2, author = $3, genre = $4, publishing_year = $5,
	date_added = $6, cover_image_path = $7, document_path = $8
WHERE id = $1`

const selectSQL = `
SELECT id, title, author, genre, publishing_year, date_added, cover_image_path, document_path
FROM books ORDER BY position`

// opTimeout bounds each statement issued through the context-free Storage methods
const opTimeout = 10 * time.Second

// PGStore is a Postgres-backed catalog. Writes go straight to the database;
// reads are served from an in-memory cache loaded at startup.
type PGStore struct {
	pool  *pgxpool.Pool
	cache *MemIndex
	batch *accel.Batch
}

// NewPGStore connects to Postgres, ensures the schema and loads the catalog
func NewPGStore(ctx context.Context, connString string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PGStore{
		pool:  pool,
		cache: NewMemIndex(),
		batch: accel.NewBatch(0),
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := s.load(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Pool returns the underlying connection pool
func (s *PGStore) Pool() *pgxpool.Pool {
	return s.pool
}

// All returns every book in insertion order
func (s *PGStore) All() []*book.Book {
	return s.cache.All()
}

// Get returns a book by ID
func (s *PGStore) Get(id string) (*book.Book, error) {
	b, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Add inserts or updates a book
func (s *PGStore) Add(b *book.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.AddWithContext(ctx, b)
}

// AddWithContext inserts or updates a book
func (s *PGStore) AddWithContext(ctx context.Context, b *book.Book) error {
	if _, err := s.pool.Exec(ctx, upsertSQL, args(b)...); err != nil {
		return fmt.Errorf("failed to store book %s: %w", b.ID, err)
	}
	s.cache.Set(b)
	return nil
}

// AddAll upserts books in batches
func (s *PGStore) AddAll(books []*book.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.sendBatches(ctx, tx, books); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit books: %w", err)
	}

	for _, b := range books {
		s.cache.Set(b)
	}
	return nil
}

// Update replaces an existing book
func (s *PGStore) Update(b *book.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, updateSQL, args(b)...)
	if err != nil {
		return fmt.Errorf("failed to update book %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, b.ID)
	}
	s.cache.Set(b)
	return nil
}

// Remove deletes a book by ID
func (s *PGStore) Remove(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.cache.Delete(id)
	return nil
}

// Replace swaps the whole catalog in one transaction
func (s *PGStore) Replace(books []*book.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	if err := s.sendBatches(ctx, tx, books); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit books: %w", err)
	}

	s.cache.Reset(books)
	return nil
}

// Reload refreshes the cache from the database
func (s *PGStore) Reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.load(ctx)
}

// Count returns the number of cached books
func (s *PGStore) Count() int {
	return s.cache.Count()
}

// Flush is a no-op; every write is already committed
func (s *PGStore) Flush() error {
	return nil
}

// Close closes the connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) sendBatches(ctx context.Context, tx pgx.Tx, books []*book.Book) error {
	for _, chunk := range accel.Chunk(s.batch, books) {
		batch := &pgx.Batch{}
		for _, b := range chunk {
			batch.Queue(upsertSQL, args(b)...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to write batch of %d books: %w", len(chunk), err)
		}
	}
	return nil
}

func (s *PGStore) load(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, selectSQL)
	if err != nil {
		return fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []*book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublishingYear,
			&b.DateAdded, &b.CoverImagePath, &b.DocumentPath); err != nil {
			return fmt.Errorf("failed to scan book: %w", err)
		}
		b.DateAdded = b.DateAdded.UTC()
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read books: %w", err)
	}

	s.cache.Reset(books)
	return nil
}

func args(b *book.Book) []any {
	return []any{
		b.ID, b.Title, b.Author, b.Genre, b.PublishingYear,
		b.DateAdded, b.CoverImagePath, b.DocumentPath,
	}
}
