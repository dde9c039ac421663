package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// AirportHandler serves the airport catalog. Queries resolve through the timeline
// service so they match what an itinerary computation would use.
type AirportHandler struct {
	registry  *airport.Registry
	timelines *timeline.Service
}

// NewAirportHandler creates a new AirportHandler. A nil registry uses the built-in catalog.
func NewAirportHandler(registry *airport.Registry, timelines *timeline.Service) *AirportHandler {
	if registry == nil {
		registry = airport.Default()
	}
	return &AirportHandler{registry: registry, timelines: timelines}
}

// List handles GET /v1/airports - picker options sorted by code, then the "other" choices.
func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	options := h.registry.Options()

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.AirportListResponse{
		Airports: options,
		Count:    len(options),
		Tiers:    airport.AllTiers(),
	})
}

// Resolve handles GET /v1/airports/{query}. Unknown queries resolve to an estimate.
func (h *AirportHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if unescaped, err := url.PathUnescape(query); err == nil {
		query = unescaped
	}

	profile, estimate := h.timelines.ResolveAirport(query)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.AirportResolveResponse{
		Query:      query,
		Profile:    profile,
		IsEstimate: estimate,
	})
}
