// Package timeline computes a "leave by" itinerary for a flight.
//
// The engine schedules backward from departure: boarding is placed first, then each
// earlier stage is prepended so that it ends exactly where the next one starts.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/pkg/timerange"
)

var (
	boardingRange = timerange.Range{Min: 15, Max: 20}

	gateBufferDomestic      = timerange.Range{Min: 15, Max: 25}
	gateBufferInternational = timerange.Range{Min: 20, Max: 30}
	internationalWalkFloor  = timerange.Range{Min: 15, Max: 25}

	securityClearPreCheck = timerange.Range{Min: 5, Max: 15}
	securityClear         = timerange.Range{Min: 15, Max: 30}
	securityPreCheck      = timerange.Range{Min: 10, Max: 20}
	securityStandard      = timerange.Range{Min: 25, Max: 45}
	securityManualHoliday = timerange.Range{Min: 10, Max: 20}
	securityFamily        = timerange.Range{Min: 5, Max: 15}

	baggageDomestic      = timerange.Range{Min: 20, Max: 35}
	baggageInternational = timerange.Range{Min: 30, Max: 50}
	baggageHoliday       = timerange.Range{Min: 10, Max: 15}
	baggageFamily        = timerange.Range{Min: 5, Max: 10}

	pickupBase    = timerange.Range{Min: 8, Max: 15}
	pickupHoliday = timerange.Range{Min: 5, Max: 10}
	pickupWeather = timerange.Range{Min: 10, Max: 20}
	callRange     = timerange.Range{Min: 2, Max: 5}

	parkingBase    = timerange.Range{Min: 15, Max: 30}
	parkingHoliday = timerange.Range{Min: 5, Max: 15}
	parkingWeather = timerange.Range{Min: 10, Max: 25}
	leaveRange     = timerange.Range{Min: 3, Max: 5}
)

const (
	boardingLeadDomestic      = 40
	boardingLeadInternational = 50
	boardingSpan              = 20

	// Airport rideshare and parking friction beyond these is added to the base stage.
	rideshareBaseline = 6
	parkingBaseline   = 15
)

// AirportResolver resolves an airport query to a profile.
type AirportResolver interface {
	Resolve(query string) (airport.Profile, bool)
}

// Engine computes itineraries. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	airports AirportResolver
	analyze  func(time.Time) conditions.Conditions
}

// NewEngine creates an engine. A nil resolver uses the built-in airport catalog.
func NewEngine(airports AirportResolver) *Engine {
	if airports == nil {
		airports = airport.Default()
	}
	return &Engine{
		airports: airports,
		analyze:  conditions.Analyze,
	}
}

var defaultEngine = NewEngine(nil)

// Compute computes an itinerary with the built-in airport catalog.
func Compute(in Inputs, now time.Time) *Result {
	return defaultEngine.Compute(in, now)
}

// Compute builds the itinerary for in. now is only used to decide whether the
// traveler should already have left.
func (e *Engine) Compute(in Inputs, now time.Time) *Result {
	profile, isEstimate := e.airports.Resolve(in.Airport)
	cond := e.analyze(in.DepartureTime)

	p := plan{
		in:            in,
		profile:       profile,
		isEstimate:    isEstimate,
		cond:          cond,
		risk:          in.RiskPreference.Multiplier(),
		international: in.TripType == TripInternational,
		family:        in.GroupType == GroupFamily,
		autoHoliday:   cond.HolidayImpact != nil,
		holiday:       in.IsHoliday || cond.HolidayImpact != nil,
	}

	boarding := p.placeBoarding()
	gateEnd := boarding.StartTime.Add(-minutes(p.pick(p.gateBuffer())))
	gateStart := p.place(StageGate, gateEnd, p.walkRange(), p.gateNote())
	securityStart := p.place(StageSecurity, gateStart, p.securityRange(), p.securityNote())

	curbEnd := securityStart
	if in.HasCheckedBag {
		curbEnd = p.place(StageBaggage, securityStart, p.baggageRange(), p.baggageNote())
	}
	arrivalStart := p.place(StageArrival, curbEnd, profile.Curb, "Curbside to terminal entrance")

	if in.TransportType == TransportCar {
		parkingStart := p.place(StageParking, arrivalStart, p.parkingRange(), "Find parking, take shuttle or walk to terminal")
		driveStart := p.placeDrive(parkingStart)
		p.place(StageLeave, driveStart, leaveRange, "Final check: ID, phone, charger, bags")
	} else {
		driveStart := p.placeDrive(arrivalStart)
		pickupStart := p.place(StagePickup, driveStart, p.pickupRange(), p.pickupNote())
		p.place(StageCall, pickupStart, callRange, "Open app and request ride; have address ready")
	}

	return p.result(now)
}

// plan accumulates stages for a single computation.
type plan struct {
	in         Inputs
	profile    airport.Profile
	isEstimate bool
	cond       conditions.Conditions
	risk       float64

	international bool
	family        bool
	autoHoliday   bool
	holiday       bool

	stages []Stage
	gate   Stage
}

func (p *plan) pick(r timerange.Range) int {
	return r.Pick(p.risk)
}

// place prepends a stage ending at end and returns its start.
func (p *plan) place(id StageID, end time.Time, r timerange.Range, note string) time.Time {
	start := end.Add(-minutes(p.pick(r)))
	p.prepend(Stage{
		ID:            id,
		StartTime:     start,
		EndTime:       end,
		DurationRange: r,
		Note:          note,
	})
	return start
}

func (p *plan) prepend(s Stage) {
	info := stageCatalog[s.ID]
	s.Label = info.label
	s.Icon = info.icon
	p.stages = append([]Stage{s}, p.stages...)
	if s.ID == StageGate {
		p.gate = s
	}
}

func (p *plan) placeBoarding() Stage {
	lead := boardingLeadDomestic
	note := "Be at gate when boarding starts for overhead bin space"
	if p.international {
		lead = boardingLeadInternational
		note = "International flights board earlier; have passport ready"
	}

	start := p.in.DepartureTime.Add(-minutes(lead))
	p.prepend(Stage{
		ID:            StageBoarding,
		StartTime:     start,
		EndTime:       start.Add(minutes(boardingSpan)),
		DurationRange: boardingRange,
		Note:          note,
	})
	return p.stages[0]
}

func (p *plan) gateBuffer() timerange.Range {
	if p.international {
		return gateBufferInternational
	}
	return gateBufferDomestic
}

func (p *plan) walkRange() timerange.Range {
	if p.international {
		return p.profile.Walk.AtLeast(internationalWalkFloor)
	}
	return p.profile.Walk
}

func (p *plan) gateNote() string {
	note := p.walkRange().String() + " walk through terminal"
	if p.profile.HasPainPoint() {
		note += ". " + p.profile.PainPoint
	}
	return note
}

func (p *plan) securityRange() timerange.Range {
	var base timerange.Range
	switch {
	case p.in.HasClear && p.in.HasPreCheck:
		base = securityClearPreCheck
	case p.in.HasClear:
		base = securityClear
	case p.in.HasPreCheck:
		base = securityPreCheck
	default:
		base = securityStandard
	}

	r := base.Add(p.profile.SecurityAdd)
	// A detected holiday scales the whole range; the manual flag only adds a fixed
	// amount when nothing was detected.
	if p.autoHoliday {
		r = r.Scale(p.cond.SecurityMultiplier)
	} else if p.in.IsHoliday {
		r = r.Add(securityManualHoliday)
	}
	if p.family {
		r = r.Add(securityFamily)
	}
	return r
}

func (p *plan) securityNote() string {
	switch {
	case p.in.HasPreCheck && p.in.HasClear:
		return "CLEAR + PreCheck: fastest lane available"
	case p.in.HasPreCheck:
		return "PreCheck: keep shoes on, laptop in bag"
	case p.in.HasClear:
		return "CLEAR: biometric skip to front of line"
	default:
		return "Standard screening: liquids out, shoes off"
	}
}

func (p *plan) baggageRange() timerange.Range {
	base := baggageDomestic
	if p.international {
		base = baggageInternational
	}

	r := base.Add(p.profile.BaggageAdd)
	if p.holiday {
		r = r.Add(baggageHoliday)
	}
	if p.family {
		r = r.Add(baggageFamily)
	}
	return r
}

func (p *plan) baggageNote() string {
	if p.international {
		return "International bags require extra verification; arrive at counter early"
	}
	return "Drop bag at counter or use self-service kiosk if available"
}

// driveMinutes applies the traffic multiplier to the traveler's drive time, or to the
// airport's typical drive when none was given. An explicit zero is kept.
func (p *plan) driveMinutes() int {
	base := p.profile.TypicalDriveTime
	if p.in.DriveTime != nil {
		base = *p.in.DriveTime
	}
	return int(math.Round(float64(base) * p.cond.TrafficMultiplier))
}

func (p *plan) placeDrive(end time.Time) time.Time {
	d := timerange.Fixed(p.driveMinutes())
	if !d.Valid() {
		d = timerange.Fixed(0)
	}

	// The note only credits the traveler's estimate when it is a positive number.
	note := fmt.Sprintf("Typical %d min from city center—check Google/Apple Maps for your route", p.profile.TypicalDriveTime)
	if p.in.DriveTime != nil && *p.in.DriveTime > 0 {
		note = "Your estimated drive time"
	}
	return p.place(StageDrive, end, d, note)
}

func (p *plan) pickupRange() timerange.Range {
	r := pickupBase.Add(p.profile.Rideshare.Shift(rideshareBaseline))
	if p.holiday {
		r = r.Add(pickupHoliday)
	}
	if p.in.IsBadWeather {
		r = r.Add(pickupWeather)
	}
	return r
}

func (p *plan) pickupNote() string {
	if p.in.IsBadWeather {
		return "Weather delays likely; expect longer wait for driver"
	}
	return "Wait time varies; driver matching and arrival"
}

func (p *plan) parkingRange() timerange.Range {
	r := parkingBase.Add(p.profile.Parking.Shift(parkingBaseline))
	if p.holiday {
		r = r.Add(parkingHoliday)
	}
	if p.in.IsBadWeather {
		r = r.Add(parkingWeather)
	}
	return r
}

func (p *plan) confidence() Confidence {
	modifiers := 0
	for _, on := range []bool{p.holiday, p.in.IsBadWeather, p.family, p.cond.IsRushHour} {
		if on {
			modifiers++
		}
	}

	severeHoliday := p.cond.HolidayImpact != nil && p.cond.HolidayImpact.Severity.Severe()
	rideshareInWeather := p.in.TransportType != TransportCar && p.in.IsBadWeather

	switch {
	case modifiers >= 2 || rideshareInWeather || severeHoliday:
		return ConfidenceHighVariance
	case modifiers == 1:
		return ConfidenceRisky
	default:
		return ConfidenceNormal
	}
}

func (p *plan) result(now time.Time) *Result {
	ranges := make([]timerange.Range, len(p.stages))
	for i, s := range p.stages {
		ranges[i] = s.DurationRange
	}
	total := timerange.Sum(ranges...)

	leaveTime := p.stages[0].StartTime
	isLeaveNow := !leaveTime.After(now)
	if isLeaveNow {
		leaveTime = now
	}

	boarding := p.stages[len(p.stages)-1]
	margin := int(math.Round(boarding.StartTime.Sub(p.gate.EndTime).Minutes()))

	return &Result{
		Stages:         p.stages,
		LeaveTime:      leaveTime,
		LeaveTimeRange: total,
		LeaveTimeWindow: Window{
			Earliest: p.in.DepartureTime.Add(-minutes(total.Max)),
			Latest:   p.in.DepartureTime.Add(-minutes(total.Min)),
		},
		Confidence:        p.confidence(),
		AirportProfile:    p.profile,
		IsAirportEstimate: p.isEstimate,
		IsLeaveNow:        isLeaveNow,
		TravelConditions:  p.cond,
		StressMargin:      margin,
		StressLevel:       StressLevelFor(margin),
	}
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
