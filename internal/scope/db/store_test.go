package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

func mustBook(t *testing.T, title, author, genre string, year int, opts ...book.Option) *book.Book {
	t.Helper()
	b, err := book.New(title, author, genre, year, opts...)
	if err != nil {
		t.Fatalf("book.New failed: %v", err)
	}
	return b
}

func TestNewStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "books.csv")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Count() != 0 {
		t.Errorf("new store should be empty, got %d books", store.Count())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("catalog file not created: %v", err)
	}
	if !strings.HasPrefix(string(data), "Title,Author,Genre,PublishingDate,DateAdded,ImagePath,DocumentPath") {
		t.Errorf("unexpected header: %q", string(data))
	}
}

func TestAddAndGet(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "books.csv"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	dune := mustBook(t, "Dune", "Frank Herbert", "Science Fiction", 1965)
	hobbit := mustBook(t, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)

	if err := store.Add(dune); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(hobbit); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if store.Count() != 2 {
		t.Errorf("expected 2 books, got %d", store.Count())
	}

	got, err := store.Get(dune.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != dune {
		t.Errorf("expected the stored record back")
	}

	all := store.All()
	if len(all) != 2 || all[0] != dune || all[1] != hobbit {
		t.Errorf("expected insertion order, got %v", all)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	added := time.Date(2023, 11, 5, 14, 3, 9, 0, time.UTC)

	// Create store and add book
	{
		store, err := NewStore(path)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}

		b := mustBook(t, `The "Quoted", Book`, "Jane Doe", "Essays", 2001,
			book.WithID("persisted-book"),
			book.WithDateAdded(added),
			book.WithCoverImage(`C:\covers\q.png`),
			book.WithDocument("docs/q.pdf"))

		if err := store.Add(b); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if err := store.Flush(); err != nil {
			t.Fatalf("Flush failed: %v", err)
		}

		_ = store.Close()
	}

	// Reload store
	{
		store, err := NewStore(path)
		if err != nil {
			t.Fatalf("NewStore (reload) failed: %v", err)
		}
		defer func() { _ = store.Close() }()

		if store.Count() != 1 {
			t.Fatalf("reloaded store should have 1 book, got %d", store.Count())
		}

		got, err := store.Get("persisted-book")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		// Verify all fields persisted
		if got.Title != `The "Quoted", Book` {
			t.Errorf("expected quoted title, got %s", got.Title)
		}
		if got.PublishingYear != 2001 {
			t.Errorf("expected year 2001, got %d", got.PublishingYear)
		}
		if !got.DateAdded.Equal(added) {
			t.Errorf("expected date %v, got %v", added, got.DateAdded)
		}
		if got.CoverImagePath != `C:\covers\q.png` || got.DocumentPath != "docs/q.pdf" {
			t.Errorf("paths not persisted: %q %q", got.CoverImagePath, got.DocumentPath)
		}
	}
}

func TestFlushWithoutChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	before, _ := os.Stat(path)
	time.Sleep(10 * time.Millisecond)
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	after, _ := os.Stat(path)

	if !before.ModTime().Equal(after.ModTime()) {
		t.Error("flush without changes should not rewrite the file")
	}
}

func TestUpdateAndRemove(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "books.csv"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	first := mustBook(t, "Original Title", "Some Author", "Drama", 1990)
	second := mustBook(t, "Second", "Other Author", "Drama", 1991)
	_ = store.AddAll([]*book.Book{first, second})

	// Update with same ID keeps position
	updated := first.Clone()
	updated.Title = "Updated Title"
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all := store.All()
	if all[0].Title != "Updated Title" {
		t.Errorf("expected updated title first, got %s", all[0].Title)
	}

	ghost := mustBook(t, "Ghost", "Nobody Here", "Drama", 1992)
	if err := store.Update(ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}

	if err := store.Remove(first.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 book after remove, got %d", store.Count())
	}
	if err := store.Remove(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestReplaceAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	_ = store.Add(mustBook(t, "Kept On Disk", "Some Author", "Drama", 1990))
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	_ = store.Replace([]*book.Book{mustBook(t, "In Memory Only", "Some Author", "Drama", 1990)})
	if store.All()[0].Title != "In Memory Only" {
		t.Fatal("Replace did not swap the catalog")
	}

	if err := store.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if store.Count() != 1 || store.All()[0].Title != "Kept On Disk" {
		t.Errorf("Reload should restore the file content, got %v", store.All())
	}
}

func TestLoadSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	content := strings.Join([]string{
		"Title,Author,Genre,PublishingDate,DateAdded,ImagePath,DocumentPath",
		`"Dune","Frank Herbert","Science Fiction",1965,"2024-01-02 03:04:05","",""`,
		`"Bad Year","Some Author","Drama",abc,"2024-01-02 03:04:05","",""`,
		`"Too Few","Columns"`,
		`"Too Old","Some Author","Drama",1200,"2024-01-02 03:04:05","",""`,
		`"Foundation","Isaac Asimov","Science Fiction",1951,"2024-01-02 03:04:06"`,
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Count() != 2 {
		t.Fatalf("expected 2 valid books, got %d", store.Count())
	}
	for _, b := range store.All() {
		if b.ID == "" {
			t.Errorf("book %q loaded without an ID", b.Title)
		}
	}

	skipped := store.Skipped()
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", len(skipped))
	}
	if skipped[0].Line != 3 {
		t.Errorf("expected first skipped row on line 3, got %d", skipped[0].Line)
	}
	if !errors.Is(skipped[2], book.ErrInvalid) {
		t.Errorf("expected validation error for too-old book, got %v", skipped[2])
	}
}
