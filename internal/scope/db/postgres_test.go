package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

func TestNewPGStoreInvalidConnection(t *testing.T) {
	ctx := context.Background()

	// Test with invalid connection string
	_, err := NewPGStore(ctx, "invalid://connection")
	if err == nil {
		t.Error("expected error with invalid connection string, got nil")
	}
}

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := NewPGStore(context.Background(), dsn)
	if err != nil {
		t.Fatalf("NewPGStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Replace(nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	dune := mustBook(t, "Dune", "Frank Herbert", "Science Fiction", 1965)
	books := []*book.Book{dune}
	for i := 0; i < 250; i++ {
		books = append(books, mustBook(t, "Filler Title", "Filler Author", "Filler", 2000+i%20))
	}
	if err := store.AddAll(books); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}

	if err := store.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if store.Count() != len(books) {
		t.Errorf("expected %d books, got %d", len(books), store.Count())
	}
	if store.All()[0].ID != dune.ID {
		t.Error("expected insertion order to survive reload")
	}

	updated := dune.Clone()
	updated.Genre = "Classic"
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.Remove(dune.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove(dune.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
