package models

import (
	"time"

	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// TimelineRequest is the body of POST /v1/timeline:compute.
// Empty enum fields take the form defaults: domestic, solo, rideshare, balanced.
type TimelineRequest struct {
	DepartureDateTime string `json:"departureDateTime" validate:"required,max=40"`

	TripType      string `json:"tripType" validate:"omitempty,oneof=domestic international"`
	HasPreCheck   bool   `json:"hasPreCheck"`
	HasClear      bool   `json:"hasClear"`
	HasCheckedBag bool   `json:"hasCheckedBag"`
	GroupType     string `json:"groupType" validate:"omitempty,oneof=solo family"`

	TransportType  string `json:"transportType" validate:"omitempty,oneof=rideshare car"`
	RiskPreference string `json:"riskPreference" validate:"omitempty,oneof=early balanced risky"`

	IsHoliday    bool `json:"isHoliday"`
	IsBadWeather bool `json:"isBadWeather"`

	Airport   string `json:"airport" validate:"max=100"`
	DriveTime *int   `json:"driveTime" validate:"omitempty,gte=0,lte=600"`

	// SaveRecent stores the search in the recent list.
	SaveRecent bool `json:"saveRecent"`
}

// Inputs converts the request into engine inputs. The departure must already
// be parsed.
func (r TimelineRequest) Inputs(departure time.Time) timeline.Inputs {
	return timeline.Inputs{
		DepartureTime:  departure,
		TripType:       timeline.TripType(orDefault(r.TripType, string(timeline.TripDomestic))),
		HasPreCheck:    r.HasPreCheck,
		HasClear:       r.HasClear,
		HasCheckedBag:  r.HasCheckedBag,
		GroupType:      timeline.GroupType(orDefault(r.GroupType, string(timeline.GroupSolo))),
		TransportType:  timeline.TransportType(orDefault(r.TransportType, string(timeline.TransportRideshare))),
		RiskPreference: timeline.RiskPreference(orDefault(r.RiskPreference, string(timeline.RiskBalanced))),
		IsHoliday:      r.IsHoliday,
		IsBadWeather:   r.IsBadWeather,
		Airport:        r.Airport,
		DriveTime:      r.DriveTime,
	}
}

// TimelineResponse is the computed itinerary plus presentation extras.
type TimelineResponse struct {
	*timeline.Result

	// ConditionsSummary is the one-line description of travel conditions.
	ConditionsSummary string `json:"conditionsSummary"`

	// SavedSearch is the stored recent entry when saveRecent was set.
	SavedSearch *recent.Search `json:"savedSearch,omitempty"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
