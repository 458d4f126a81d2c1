package httpapi

import "net/http"

// HandleHealth returns API health status and book count
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	count := h.catalog.Count()
	resp := HealthResponse{
		Status:    "healthy",
		BookCount: count,
	}

	h.logger.Debug().Int("book_count", count).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
