package handler

import (
	"net/http"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// ConditionsHandler analyzes travel conditions for a departure time.
type ConditionsHandler struct {
	timelines *timeline.Service
	location  *time.Location
}

// NewConditionsHandler creates a new ConditionsHandler reading wall-clock times in loc.
func NewConditionsHandler(timelines *timeline.Service, loc *time.Location) *ConditionsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ConditionsHandler{timelines: timelines, location: loc}
}

// Analyze handles GET /v1/conditions?at=...
func (h *ConditionsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		response.BadRequest(w, r, "query parameter at is required", []models.FieldError{
			{Field: "at", Message: "is required", Code: models.CodeRequired},
		})
		return
	}

	at, err := timeline.ParseDateTime(raw, h.location)
	if err != nil {
		response.BadRequest(w, r, "at is not a valid date-time", []models.FieldError{
			{Field: "at", Message: "must be YYYY-MM-DDTHH:MM[:SS] or RFC3339", Code: models.CodeInvalidValue},
		})
		return
	}

	c := h.timelines.Conditions(at)
	response.JSON(w, r, http.StatusOK, models.ConditionsResponse{
		At:          at,
		Conditions:  c,
		Description: conditions.Describe(c),
	})
}
