package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dsjohal14/shelfstack/internal/scope/book"
	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
)

// HandleAddBook validates and stores a new book
func (h *Handler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid add request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	b, err := newBook(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_BOOK")
		return
	}

	if err := h.catalog.Add(b); err != nil {
		h.writeCatalogError(w, err, b.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toBook(b))
}

// HandleGetBook returns one book by ID
func (h *Handler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.catalog.Get(id)
	if err != nil {
		h.writeCatalogError(w, err, id)
		return
	}

	writeJSON(w, http.StatusOK, toBook(b))
}

// HandleUpdateBook replaces the fields of an existing book
func (h *Handler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid update request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	// A missing date_added keeps the stored timestamp
	b := book.Edit(req.Title, req.Author, req.Genre, req.PublishingYear, bookOptions(req)...)

	if err := h.catalog.Update(id, b); err != nil {
		h.writeCatalogError(w, err, id)
		return
	}

	updated, err := h.catalog.Get(id)
	if err != nil {
		h.writeCatalogError(w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, toBook(updated))
}

// HandleDeleteBook removes a book by ID
func (h *Handler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Remove(id); err != nil {
		h.writeCatalogError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func newBook(req BookRequest) (*book.Book, error) {
	return book.New(req.Title, req.Author, req.Genre, req.PublishingYear, bookOptions(req)...)
}

func bookOptions(req BookRequest) []book.Option {
	return []book.Option{
		book.WithDateAdded(req.DateAdded),
		book.WithCoverImage(req.CoverImagePath),
		book.WithDocument(req.DocumentPath),
	}
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "book not found", "NOT_FOUND")
	case errors.Is(err, book.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_BOOK")
	default:
		h.logger.Error().Err(err).Str("book_id", id).Msg("catalog operation failed")
		writeError(w, http.StatusInternalServerError, "failed to store book", "STORE_ERROR")
	}
}
