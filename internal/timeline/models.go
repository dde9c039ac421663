package timeline

import (
	"time"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/pkg/timerange"
)

// TripType distinguishes domestic from international departures.
type TripType string

const (
	TripDomestic      TripType = "domestic"
	TripInternational TripType = "international"
)

// GroupType is who is traveling.
type GroupType string

const (
	GroupSolo   GroupType = "solo"
	GroupFamily GroupType = "family"
)

// TransportType is how the traveler gets to the airport.
type TransportType string

const (
	TransportRideshare TransportType = "rideshare"
	TransportCar       TransportType = "car"
)

// RiskPreference selects a point inside every stage's range.
type RiskPreference string

const (
	RiskEarly    RiskPreference = "early"
	RiskBalanced RiskPreference = "balanced"
	RiskRisky    RiskPreference = "risky"
)

// Multiplier returns the position inside a range: early takes the maximum,
// risky the midpoint.
func (r RiskPreference) Multiplier() float64 {
	switch r {
	case RiskEarly:
		return 1.0
	case RiskBalanced:
		return 0.75
	default:
		return 0.5
	}
}

// Confidence classifies the variance of the whole itinerary.
type Confidence string

const (
	ConfidenceNormal       Confidence = "normal"
	ConfidenceRisky        Confidence = "risky"
	ConfidenceHighVariance Confidence = "high-variance"
)

// StressLevel classifies the slack between reaching the gate and boarding.
type StressLevel string

const (
	StressCalm  StressLevel = "CALM"
	StressTight StressLevel = "TIGHT"
	StressRisky StressLevel = "RISKY"
)

// StressLevelFor classifies a stress margin in minutes.
func StressLevelFor(margin int) StressLevel {
	switch {
	case margin < 10:
		return StressRisky
	case margin < 25:
		return StressTight
	default:
		return StressCalm
	}
}

// StageID identifies a leg of the itinerary.
type StageID string

const (
	StageLeave    StageID = "leave"
	StageCall     StageID = "call"
	StagePickup   StageID = "pickup"
	StageDrive    StageID = "drive"
	StageParking  StageID = "parking"
	StageArrival  StageID = "arrival"
	StageBaggage  StageID = "baggage"
	StageSecurity StageID = "security"
	StageGate     StageID = "gate"
	StageBoarding StageID = "boarding"
)

type stageInfo struct {
	label string
	icon  string
}

var stageCatalog = map[StageID]stageInfo{
	StageLeave:    {"Head to Car", "home"},
	StageCall:     {"Call Rideshare", "smartphone"},
	StagePickup:   {"Rideshare Pickup", "car"},
	StageDrive:    {"Drive to Airport", "navigation"},
	StageParking:  {"Park & Shuttle", "car"},
	StageArrival:  {"Airport Arrival", "map-pin"},
	StageBaggage:  {"Baggage Check-in", "luggage"},
	StageSecurity: {"Security Screening", "shield-check"},
	StageGate:     {"Gate Arrival", "door-open"},
	StageBoarding: {"Boarding", "plane"},
}

// Inputs is the traveler's request.
type Inputs struct {
	// DepartureTime is the scheduled departure in the traveler's wall-clock time.
	DepartureTime time.Time `json:"departureDateTime"`

	TripType      TripType  `json:"tripType"`
	HasPreCheck   bool      `json:"hasPreCheck"`
	HasClear      bool      `json:"hasClear"`
	HasCheckedBag bool      `json:"hasCheckedBag"`
	GroupType     GroupType `json:"groupType"`

	TransportType  TransportType  `json:"transportType"`
	RiskPreference RiskPreference `json:"riskPreference"`

	// IsHoliday is the traveler's manual holiday flag.
	IsHoliday    bool `json:"isHoliday"`
	IsBadWeather bool `json:"isBadWeather"`

	// Airport is a code, sentinel or free text. Empty means unknown.
	Airport string `json:"airport,omitempty"`

	// DriveTime overrides the airport's typical drive in minutes.
	DriveTime *int `json:"driveTime,omitempty"`
}

// Stage is one leg of the itinerary.
type Stage struct {
	ID            StageID         `json:"id"`
	Label         string          `json:"label"`
	Icon          string          `json:"icon"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	DurationRange timerange.Range `json:"durationRange"`
	Note          string          `json:"note"`
}

// Window is the span of plausible leave instants.
type Window struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Result is a computed itinerary.
type Result struct {
	// Stages are in chronological order; the last one is boarding.
	Stages []Stage `json:"stages"`

	// LeaveTime is the start of the first stage, or the evaluation time when that
	// has already been reached.
	LeaveTime       time.Time       `json:"leaveTime"`
	LeaveTimeRange  timerange.Range `json:"leaveTimeRange"`
	LeaveTimeWindow Window          `json:"leaveTimeWindow"`

	Confidence        Confidence            `json:"confidence"`
	AirportProfile    airport.Profile       `json:"airportProfile"`
	IsAirportEstimate bool                  `json:"isAirportEstimate"`
	IsLeaveNow        bool                  `json:"isLeaveNow"`
	TravelConditions  conditions.Conditions `json:"travelConditions"`

	// StressMargin is the slack in minutes between reaching the gate and boarding.
	StressMargin int         `json:"stressMargin"`
	StressLevel  StressLevel `json:"stressLevel"`
}

// Stage returns the stage with the given id.
func (r *Result) Stage(id StageID) (Stage, bool) {
	for _, s := range r.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// StageIDs returns the stage ids in order.
func (r *Result) StageIDs() []StageID {
	ids := make([]StageID, len(r.Stages))
	for i, s := range r.Stages {
		ids[i] = s.ID
	}
	return ids
}
