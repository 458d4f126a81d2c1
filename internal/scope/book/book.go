// Package book defines the catalog record shared by storage, ordering and search.
package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DateLayout is the canonical text form of DateAdded, used both for
// persistence and for search tokens.
const DateLayout = "2006-01-02 15:04:05"

// MinPublishingYear is the earliest accepted publishing year.
const MinPublishingYear = 1440

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid book")

// Book is one catalog entry. Records are shared by pointer between the
// catalog and the search index and must not be mutated once indexed.
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

// Option customizes a Book built by New
type Option func(*Book)

// WithID sets an explicit ID instead of generating one
func WithID(id string) Option {
	return func(b *Book) { b.ID = id }
}

// WithDateAdded sets the time the book entered the catalog
func WithDateAdded(t time.Time) Option {
	return func(b *Book) { b.DateAdded = t }
}

// WithCoverImage attaches a cover image path
func WithCoverImage(path string) Option {
	return func(b *Book) { b.CoverImagePath = path }
}

// WithDocument attaches a document path
func WithDocument(path string) Option {
	return func(b *Book) { b.DocumentPath = path }
}

// New builds a validated book. Text fields are trimmed, DateAdded defaults
// to now and is normalized to whole seconds in UTC.
func New(title, author, genre string, year int, opts ...Option) (*Book, error) {
	b := Edit(title, author, genre, year, opts...)
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.DateAdded.IsZero() {
		b.DateAdded = time.Now().UTC().Truncate(time.Second)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Edit builds a record for changing an existing book. Fields are normalized
// like New, but nothing is defaulted or validated: a zero ID or DateAdded
// stays zero.
func Edit(title, author, genre string, year int, opts ...Option) *Book {
	b := &Book{
		Title:          strings.TrimSpace(title),
		Author:         strings.TrimSpace(author),
		Genre:          strings.TrimSpace(genre),
		PublishingYear: year,
	}
	for _, opt := range opts {
		opt(b)
	}
	if !b.DateAdded.IsZero() {
		b.DateAdded = b.DateAdded.UTC().Truncate(time.Second)
	}
	return b
}

// Validate checks the catalog entry rules
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" || strings.TrimSpace(b.Genre) == "" {
		return fmt.Errorf("%w: title, author and genre are required", ErrInvalid)
	}
	if b.PublishingYear < MinPublishingYear {
		return fmt.Errorf("%w: publishing year must be %d or later", ErrInvalid, MinPublishingYear)
	}
	if !wellFormedName(b.Title) {
		return fmt.Errorf("%w: title must be at least 2 characters and not start with a special character", ErrInvalid)
	}
	if !wellFormedName(b.Author) {
		return fmt.Errorf("%w: author must be at least 2 characters and not start with a special character", ErrInvalid)
	}
	return nil
}

// Clone returns a shallow copy with its own identity
func (b *Book) Clone() *Book {
	c := *b
	return &c
}

// DateAddedText renders DateAdded in DateLayout, or "" when unset
func (b *Book) DateAddedText() string {
	if b.DateAdded.IsZero() {
		return ""
	}
	return b.DateAdded.UTC().Format(DateLayout)
}

func (b *Book) String() string {
	return b.Title + " by " + b.Author
}

func wellFormedName(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
