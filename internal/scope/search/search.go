// Package search provides the substring search index over catalog records.
package search

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
	"github.com/dsjohal14/shelfstack/internal/scope/order"
)

// Index maps whole-field tokens to the records that carry them. It is built
// from a snapshot and never updated; callers rebuild after every mutation.
// The records are borrowed, not copied.
type Index struct {
	records  []*book.Book // snapshot order, nil and repeats dropped
	postings map[string][]*book.Book
	tokens   []string // distinct tokens in first-seen order
}

// Build indexes a snapshot of records. Each record contributes up to five
// tokens: title, author, genre, publishing year and the DateLayout form of
// DateAdded.
func Build(records []*book.Book) *Index {
	idx := &Index{
		records:  make([]*book.Book, 0, len(records)),
		postings: make(map[string][]*book.Book, len(records)*5),
	}

	seen := make(map[*book.Book]struct{}, len(records))
	for _, b := range records {
		if b == nil {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		idx.records = append(idx.records, b)

		for _, tok := range Tokens(b) {
			if _, ok := idx.postings[tok]; !ok {
				idx.tokens = append(idx.tokens, tok)
			}
			idx.postings[tok] = append(idx.postings[tok], b)
		}
	}

	return idx
}

// Tokens returns the distinct normalized tokens of a record
func Tokens(b *book.Book) []string {
	fields := [...]string{
		b.Title,
		b.Author,
		b.Genre,
		strconv.Itoa(b.PublishingYear),
		b.DateAddedText(),
	}

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := normalize(f)
		if tok == "" || slices.Contains(out, tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Search returns every record with a token containing query, each exactly
// once, in snapshot order. A blank query matches every record.
func (idx *Index) Search(query string) []*book.Book {
	q := normalize(query)
	if q == "" {
		return idx.all()
	}

	matched := make(map[*book.Book]struct{})
	for _, tok := range idx.tokens {
		if !strings.Contains(tok, q) {
			continue
		}
		for _, b := range idx.postings[tok] {
			matched[b] = struct{}{}
		}
	}

	results := make([]*book.Book, 0, len(matched))
	if len(matched) == 0 {
		return results
	}
	for _, b := range idx.records {
		if _, ok := matched[b]; ok {
			results = append(results, b)
		}
	}
	return results
}

// SearchSorted is Search followed by a stable sort on field
func (idx *Index) SearchSorted(query string, field order.Field, ascending bool) []*book.Book {
	results := idx.Search(query)
	order.SortInPlace(results, field, ascending)
	return results
}

// Len returns the number of indexed records
func (idx *Index) Len() int {
	return len(idx.records)
}

// TokenCount returns the number of distinct tokens
func (idx *Index) TokenCount() int {
	return len(idx.tokens)
}

// all returns a copy of the snapshot so callers may sort it
func (idx *Index) all() []*book.Book {
	return slices.Clone(idx.records)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
