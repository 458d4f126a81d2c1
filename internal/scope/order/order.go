// Package order provides the stable, field-selectable ordering of catalog records.
package order

import (
	"cmp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

// Field selects the record attribute that drives comparison
type Field int

const (
	Title Field = iota
	Author
	Genre
	PublishingYear
	DateAdded
)

var fieldNames = [...]string{
	Title:          "title",
	Author:         "author",
	Genre:          "genre",
	PublishingYear: "publishing_year",
	DateAdded:      "date_added",
}

func (f Field) String() string {
	if f < Title || f > DateAdded {
		return fieldNames[Title]
	}
	return fieldNames[f]
}

// ParseField maps a user-facing selector to a Field. Matching ignores case,
// spaces, dashes and underscores. Unknown selectors fall back to Title.
func ParseField(s string) Field {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	switch key {
	case "author":
		return Author
	case "genre":
		return Genre
	case "publishingyear", "publishingdate", "year":
		return PublishingYear
	case "dateadded", "added":
		return DateAdded
	default:
		return Title
	}
}

// Compare returns the comparator for field. Descending negates the
// ascending comparator, so both directions share one key definition.
func Compare(field Field, ascending bool) func(a, b *book.Book) int {
	base := comparator(field)
	if ascending {
		return base
	}
	return func(a, b *book.Book) int {
		return -base(a, b)
	}
}

func comparator(field Field) func(a, b *book.Book) int {
	switch field {
	case Author:
		return func(a, b *book.Book) int { return compareFold(a.Author, b.Author) }
	case Genre:
		return func(a, b *book.Book) int { return compareFold(a.Genre, b.Genre) }
	case PublishingYear:
		return func(a, b *book.Book) int { return cmp.Compare(a.PublishingYear, b.PublishingYear) }
	case DateAdded:
		return func(a, b *book.Book) int { return a.DateAdded.Compare(b.DateAdded) }
	default:
		return func(a, b *book.Book) int { return compareFold(a.Title, b.Title) }
	}
}

// compareFold compares two strings rune by rune after lower-casing,
// without allocating.
func compareFold(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			la, lb := unicode.ToLower(ra), unicode.ToLower(rb)
			if la != lb {
				return cmp.Compare(la, lb)
			}
		}
		a, b = a[na:], b[nb:]
	}
	// One side is exhausted; the shorter string sorts first.
	return cmp.Compare(len(a), len(b))
}

// Sort returns a new slice holding books ordered by field. The sort is
// stable and the input slice is left untouched.
func Sort(books []*book.Book, field Field, ascending bool) []*book.Book {
	out := make([]*book.Book, len(books))
	copy(out, books)
	SortInPlace(out, field, ascending)
	return out
}

// SortInPlace stably orders books by field
func SortInPlace(books []*book.Book, field Field, ascending bool) {
	mergeSort(books, Compare(field, ascending))
}
