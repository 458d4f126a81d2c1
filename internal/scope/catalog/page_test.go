package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
)

func records(n int) []*book.Book {
	out := make([]*book.Book, n)
	for i := range out {
		out[i] = &book.Book{PublishingYear: i}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		perPage    int
		wantNumber int
		wantLen    int
		wantPages  int
	}{
		{"empty has one page", 0, 1, 25, 1, 0, 1},
		{"first page", 60, 1, 25, 1, 25, 3},
		{"last partial page", 60, 3, 25, 3, 10, 3},
		{"page clamped high", 60, 9, 25, 3, 10, 3},
		{"page clamped low", 60, -2, 25, 1, 25, 3},
		{"default per page", 30, 2, 0, 2, 5, 2},
		{"exact fit", 50, 2, 25, 2, 25, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(records(tt.total), tt.page, tt.perPage)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Len(t, p.Books, tt.wantLen)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPaginateSlicesInOrder(t *testing.T) {
	p := Paginate(records(7), 2, 3)
	assert.Equal(t, 3, p.Books[0].PublishingYear)
	assert.Equal(t, 5, p.Books[2].PublishingYear)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	last := Paginate(records(7), 3, 3)
	assert.False(t, last.HasNext())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected []int
	}{
		{"single page", 1, 1, []int{1}},
		{"all pages fit", 4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{"at start", 1, 20, []int{1, 2, 0, 20}},
		{"near start", 3, 20, []int{1, 2, 3, 4, 0, 20}},
		{"gap before", 4, 20, []int{1, 0, 3, 4, 5, 0, 20}},
		{"middle", 10, 20, []int{1, 0, 9, 10, 11, 0, 20}},
		{"near end", 18, 20, []int{1, 0, 17, 18, 19, 20}},
		{"at end", 20, 20, []int{1, 0, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Window(tt.current, tt.total))
		})
	}
}
