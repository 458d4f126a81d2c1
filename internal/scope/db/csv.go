package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

// csvHeader is the column layout of the catalog file. ID is optional on read
// so files written without it still load.
var csvHeader = []string{"Title", "Author", "Genre", "PublishingDate", "DateAdded", "ImagePath", "DocumentPath", "ID"}

const minCSVColumns = 5

// RowError describes a catalog row that was skipped during decoding
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// EncodeCSV writes books with a header row
func EncodeCSV(w io.Writer, books []*book.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, b := range books {
		row := []string{
			b.Title,
			b.Author,
			b.Genre,
			strconv.Itoa(b.PublishingYear),
			b.DateAddedText(),
			b.CoverImagePath,
			b.DocumentPath,
			b.ID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write book %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads a catalog file. Malformed or invalid rows are skipped and
// reported; only I/O failures abort the read.
func DecodeCSV(r io.Reader) ([]*book.Book, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		books   []*book.Book
		skipped []RowError
		first   = true
	)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped = append(skipped, RowError{Line: perr.StartLine, Err: perr.Err})
			first = false
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}

		b, err := parseRow(row)
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}
		books = append(books, b)
	}

	return books, skipped, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), csvHeader[0])
}

func parseRow(row []string) (*book.Book, error) {
	if len(row) < minCSVColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", minCSVColumns, len(row))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	year, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("invalid publishing year %q: %w", row[3], err)
	}
	added, err := time.Parse(book.DateLayout, row[4])
	if err != nil {
		return nil, fmt.Errorf("invalid date added %q: %w", row[4], err)
	}

	opts := []book.Option{book.WithDateAdded(added)}
	if len(row) > 5 {
		opts = append(opts, book.WithCoverImage(row[5]))
	}
	if len(row) > 6 {
		opts = append(opts, book.WithDocument(row[6]))
	}
	if len(row) > 7 && row[7] != "" {
		opts = append(opts, book.WithID(row[7]))
	}

	return book.New(row[0], row[1], row[2], year, opts...)
}
