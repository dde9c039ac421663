package handler

import (
	"net/http"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// TimelineHandler handles itinerary computation.
type TimelineHandler struct {
	timelines *timeline.Service
	recents   *recent.Service
	location  *time.Location
}

// NewTimelineHandler creates a new TimelineHandler. recents may be nil, in which
// case saveRecent is ignored. Wall-clock departures are read in loc.
func NewTimelineHandler(timelines *timeline.Service, recents *recent.Service, loc *time.Location) *TimelineHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TimelineHandler{
		timelines: timelines,
		recents:   recents,
		location:  loc,
	}
}

// Compute handles POST /v1/timeline:compute.
func (h *TimelineHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req models.TimelineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "", Message: err.Error(), Code: models.CodeInvalidJSON},
		})
		return
	}

	if errs := validationErrors(req); errs != nil {
		response.BadRequest(w, r, "request body failed validation", errs)
		return
	}

	departure, err := timeline.ParseDateTime(req.DepartureDateTime, h.location)
	if err != nil {
		response.BadRequest(w, r, "departureDateTime is not a valid date-time", []models.FieldError{
			{
				Field:   "departureDateTime",
				Message: "must be YYYY-MM-DDTHH:MM[:SS] or RFC3339",
				Code:    models.CodeInvalidValue,
			},
		})
		return
	}

	in := req.Inputs(departure)
	res := h.timelines.Compute(r.Context(), in)

	resp := models.TimelineResponse{
		Result:            res,
		ConditionsSummary: conditions.Describe(res.TravelConditions),
	}

	if req.SaveRecent && h.recents != nil {
		saved := h.recents.Save(r.Context(), recent.FromResult(in, res))
		resp.SavedSearch = &saved
	}

	w.Header().Set("Cache-Control", "no-store")
	response.JSON(w, r, http.StatusOK, resp)
}
