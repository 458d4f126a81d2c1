package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dsjohal14/shelfstack/internal/scope/catalog"
	"github.com/dsjohal14/shelfstack/internal/scope/order"
)

// HandleSearch filters, sorts and pages the catalog from a JSON body
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	q := catalog.Query{
		Text:       req.Query,
		SortBy:     req.Sort,
		Descending: req.Ascending != nil && !*req.Ascending,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}
	h.query(w, q)
}

// HandleListBooks is the query-string form of HandleSearch:
// GET /books?q=&sort=&order=asc|desc&page=&per_page=
func (h *Handler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, err := intParam(params.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer", "INVALID_PARAM")
		return
	}
	perPage, err := intParam(params.Get("per_page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "per_page must be an integer", "INVALID_PARAM")
		return
	}

	q := catalog.Query{
		Text:       params.Get("q"),
		SortBy:     params.Get("sort"),
		Descending: strings.EqualFold(params.Get("order"), "desc"),
		Page:       page,
		PerPage:    perPage,
	}
	h.query(w, q)
}

func (h *Handler) query(w http.ResponseWriter, q catalog.Query) {
	// Set default and max page sizes
	if q.PerPage <= 0 {
		q.PerPage = h.pageSize
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage // Max page size for performance
	}

	page := h.catalog.Query(q)
	field := order.ParseField(q.SortBy)

	h.logger.Info().
		Str("query", q.Text).
		Str("sort", field.String()).
		Bool("descending", q.Descending).
		Int("total", page.Total).
		Int("page", page.Number).
		Msg("search completed")

	writeJSON(w, http.StatusOK, toPageResponse(q, field.String(), page))
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
