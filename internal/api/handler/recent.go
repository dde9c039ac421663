package handler

import (
	"net/http"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/recent"
)

// RecentHandler serves the shared recent search list.
type RecentHandler struct {
	recents *recent.Service
	clock   func() time.Time
}

// NewRecentHandler creates a new RecentHandler.
func NewRecentHandler(recents *recent.Service, clock func() time.Time) *RecentHandler {
	if clock == nil {
		clock = time.Now
	}
	return &RecentHandler{recents: recents, clock: clock}
}

// List handles GET /v1/recent-searches. Storage faults yield an empty list.
func (h *RecentHandler) List(w http.ResponseWriter, r *http.Request) {
	searches := h.recents.List(r.Context())

	w.Header().Set("Cache-Control", "no-store")
	response.JSON(w, r, http.StatusOK, models.NewRecentSearchesResponse(searches, h.clock()))
}

// Clear handles DELETE /v1/recent-searches.
func (h *RecentHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.recents.Clear(r.Context())
	response.NoContent(w, r)
}
