package conditions

import "time"

// rushHour classifies t's local wall-clock time. Weekends never qualify.
//
// Morning: heavy 7:00-9:00, moderate 6:00-7:00 and 9:00-9:30.
// Evening: heavy 16:00-18:30, moderate 15:30-16:00 and 18:30-19:00.
func rushHour(t time.Time) RushHourSeverity {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return RushNone
	}

	h := float64(t.Hour()) + float64(t.Minute())/60

	switch {
	case h >= 7 && h <= 9:
		return RushHeavy
	case (h >= 6 && h < 7) || (h > 9 && h <= 9.5):
		return RushModerate
	case h >= 16 && h <= 18.5:
		return RushHeavy
	case (h >= 15.5 && h < 16) || (h > 18.5 && h <= 19):
		return RushModerate
	default:
		return RushNone
	}
}
