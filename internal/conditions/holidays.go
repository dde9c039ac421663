package conditions

import "time"

type holidayRule struct {
	name        string
	severity    HolidaySeverity
	multiplier  float64
	description string
	matches     func(date time.Time) bool
}

func (h holidayRule) impact() *HolidayImpact {
	return &HolidayImpact{
		Name:               h.name,
		Severity:           h.severity,
		SecurityMultiplier: h.multiplier,
		Description:        h.description,
	}
}

// onDay matches a single fixed calendar day.
func onDay(month time.Month, d int) func(time.Time) bool {
	return func(date time.Time) bool {
		return date.Month() == month && date.Day() == d
	}
}

// between matches fixed days first..last of a month, inclusive.
func between(month time.Month, first, last int) func(time.Time) bool {
	return func(date time.Time) bool {
		return date.Month() == month && date.Day() >= first && date.Day() <= last
	}
}

// around matches dates whose offset in days from a yearly anchor lies in [from, to].
// Anchors of the neighbouring years are checked too, so windows near a year
// boundary resolve against the correct year.
func around(anchor func(year int) time.Time, from, to int) func(time.Time) bool {
	return func(date time.Time) bool {
		for y := date.Year() - 1; y <= date.Year()+1; y++ {
			offset := daysBetween(anchor(y), date)
			if offset >= from && offset <= to {
				return true
			}
		}
		return false
	}
}

// holidayRules is evaluated in order and the first match wins. Single days precede
// the broader windows that contain them.
var holidayRules = []holidayRule{
	{
		name:        "Thanksgiving Day",
		severity:    HolidayLight,
		multiplier:  0.9,
		description: "Thanksgiving Day is quieter—most already traveled",
		matches:     around(thanksgiving, 0, 0),
	},
	{
		// Sunday before through Wednesday.
		name:        "Thanksgiving Week",
		severity:    HolidayExtreme,
		multiplier:  1.5,
		description: "Peak Thanksgiving travel—arrive extra early",
		matches:     around(thanksgiving, -4, 0),
	},
	{
		// Friday through Sunday after.
		name:        "Thanksgiving Return",
		severity:    HolidayExtreme,
		multiplier:  1.45,
		description: "Thanksgiving return rush—airports packed",
		matches:     around(thanksgiving, 1, 3),
	},
	{
		name:        "Christmas Rush",
		severity:    HolidayHeavy,
		multiplier:  1.35,
		description: "Pre-Christmas travel surge",
		matches:     between(time.December, 20, 23),
	},
	{
		name:        "Christmas Eve",
		severity:    HolidayModerate,
		multiplier:  1.15,
		description: "Morning flights busy, afternoon quieter",
		matches:     onDay(time.December, 24),
	},
	{
		name:        "Christmas Day",
		severity:    HolidayLight,
		multiplier:  0.85,
		description: "Christmas Day is one of the quietest—good travel day",
		matches:     onDay(time.December, 25),
	},
	{
		name:        "Post-Christmas Rush",
		severity:    HolidayHeavy,
		multiplier:  1.3,
		description: "Post-holiday travel surge",
		matches:     between(time.December, 26, 30),
	},
	{
		name:        "New Year's Eve",
		severity:    HolidayModerate,
		multiplier:  1.15,
		description: "Moderate volume—people heading to NYE destinations",
		matches:     onDay(time.December, 31),
	},
	{
		name:        "New Year's Day",
		severity:    HolidayLight,
		multiplier:  0.9,
		description: "Lighter travel day—many recovering from NYE",
		matches:     onDay(time.January, 1),
	},
	{
		name:        "Post-New Year Rush",
		severity:    HolidayHeavy,
		multiplier:  1.35,
		description: "New Year return rush—back to work/school",
		matches:     between(time.January, 2, 3),
	},
	{
		name:        "Spring Break Period",
		severity:    HolidayModerate,
		multiplier:  1.2,
		description: "Spring break season—family travel surge",
		matches: func(date time.Time) bool {
			return between(time.March, 10, 31)(date) || between(time.April, 1, 20)(date)
		},
	},
	{
		// Thursday before through Tuesday after.
		name:        "Memorial Day Weekend",
		severity:    HolidayHeavy,
		multiplier:  1.3,
		description: "Memorial Day weekend getaway rush",
		matches:     around(memorialDay, -4, 1),
	},
	{
		name:        "July 4th",
		severity:    HolidayModerate,
		multiplier:  1.1,
		description: "July 4th day—most are at destinations",
		matches:     onDay(time.July, 4),
	},
	{
		name:        "July 4th Weekend",
		severity:    HolidayHeavy,
		multiplier:  1.25,
		description: "Independence Day travel rush",
		matches:     between(time.July, 1, 7),
	},
	{
		name:        "Labor Day Weekend",
		severity:    HolidayHeavy,
		multiplier:  1.3,
		description: "Labor Day—last summer travel rush",
		matches:     around(laborDay, -4, 1),
	},
	{
		// Approximated as the first two Sundays of February.
		name:        "Super Bowl Sunday",
		severity:    HolidayModerate,
		multiplier:  1.15,
		description: "Super Bowl Sunday—fans heading to game cities",
		matches: func(date time.Time) bool {
			return date.Weekday() == time.Sunday && between(time.February, 1, 14)(date)
		},
	},
	{
		// Friday through Monday.
		name:        "MLK Day Weekend",
		severity:    HolidayModerate,
		multiplier:  1.15,
		description: "MLK Day long weekend travel",
		matches:     around(mlkDay, -3, 0),
	},
	{
		name:        "Presidents Day Weekend",
		severity:    HolidayModerate,
		multiplier:  1.2,
		description: "Presidents Day ski & beach getaway rush",
		matches:     around(presidentsDay, -3, 0),
	},
}

// detectHoliday returns the first holiday period containing t's calendar date.
func detectHoliday(t time.Time) *HolidayImpact {
	date := dateOf(t)
	for _, h := range holidayRules {
		if h.matches(date) {
			return h.impact()
		}
	}
	return nil
}

// Holidays returns the holiday period names in evaluation order.
func Holidays() []string {
	names := make([]string, len(holidayRules))
	for i, h := range holidayRules {
		names[i] = h.name
	}
	return names
}
