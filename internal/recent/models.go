package recent

import (
	"errors"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// StorageKey is the key the search list is stored under in every backend.
const StorageKey = "jetsweep_recent_searches"

// MaxSearches bounds the stored list.
const MaxSearches = 5

// Recent search errors.
var (
	ErrCorruptData      = errors.New("stored recent searches are not valid JSON")
	ErrStoreUnavailable = errors.New("recent search store unavailable")
)

// IsDataError reports whether err came from a stored document that could not
// be decoded. The store itself answered, so guards treat it as healthy.
func IsDataError(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// Search is a condensed past itinerary.
type Search struct {
	ID          string            `json:"id"`
	Airport     string            `json:"airport"`
	AirportName string            `json:"airportName"`
	TripType    timeline.TripType `json:"tripType"`
	LeaveTime   time.Time         `json:"leaveTime"`
	FlightTime  time.Time         `json:"flightTime"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// SearchInput holds the fields a caller supplies when saving a search.
type SearchInput struct {
	Airport     string
	AirportName string
	TripType    timeline.TripType
	LeaveTime   time.Time
	FlightTime  time.Time
}

// FromResult condenses a computed itinerary into a search to save.
func FromResult(in timeline.Inputs, res *timeline.Result) SearchInput {
	return SearchInput{
		Airport:     res.AirportProfile.Code,
		AirportName: res.AirportProfile.Name,
		TripType:    in.TripType,
		LeaveTime:   res.LeaveTime,
		FlightTime:  in.DepartureTime,
	}
}

// sameTrip reports whether s duplicates a search for the same airport and trip type.
func (s Search) sameTrip(in SearchInput) bool {
	return s.Airport == in.Airport && s.TripType == in.TripType
}
