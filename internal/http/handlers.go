package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
	"github.com/rs/zerolog"
)

// MaxPerPage caps the page size a client may request
const MaxPerPage = 100

// Handler contains HTTP handlers for the API
type Handler struct {
	catalog  *catalog.Catalog
	logger   zerolog.Logger
	pageSize int
}

// NewHandler creates a new HTTP handler. pageSize is the default number of
// books per page.
func NewHandler(c *catalog.Catalog, logger zerolog.Logger, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPerPage
	}
	return &Handler{
		catalog:  c,
		logger:   logger,
		pageSize: min(pageSize, MaxPerPage),
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
