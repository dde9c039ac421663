// Package conditions classifies a departure time for rush hour traffic and holiday crowding.
//
// Analysis is a pure function of the timestamp. Wall-clock fields are read in the
// timestamp's own location; no timezone conversion happens here.
package conditions

import (
	"strings"
	"time"
)

const (
	noteHeavyTraffic    = "Rush hour traffic—expect 35% longer drive times"
	noteModerateTraffic = "Moderate traffic—allow 15% extra drive time"
)

// Analyze derives the travel conditions for a departure at t.
func Analyze(t time.Time) Conditions {
	severity := rushHour(t)
	holiday := detectHoliday(t)

	c := Conditions{
		IsRushHour:         severity != RushNone,
		RushHourSeverity:   severity,
		HolidayImpact:      holiday,
		TrafficMultiplier:  severity.TrafficMultiplier(),
		SecurityMultiplier: 1.0,
		Notes:              []string{},
	}

	switch severity {
	case RushHeavy:
		c.Notes = append(c.Notes, noteHeavyTraffic)
	case RushModerate:
		c.Notes = append(c.Notes, noteModerateTraffic)
	}

	if holiday != nil {
		c.SecurityMultiplier = holiday.SecurityMultiplier
		c.Notes = append(c.Notes, holiday.Description)
	}

	return c
}

// Describe returns a one-line summary such as "Heavy rush hour + Christmas Rush".
func Describe(c Conditions) string {
	var parts []string

	switch c.RushHourSeverity {
	case RushHeavy:
		parts = append(parts, "Heavy rush hour")
	case RushModerate:
		parts = append(parts, "Moderate traffic")
	}

	if c.HolidayImpact != nil {
		parts = append(parts, c.HolidayImpact.Name)
	}

	if len(parts) == 0 {
		return "Normal conditions"
	}
	return strings.Join(parts, " + ")
}
