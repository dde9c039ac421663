package conditions

// RushHourSeverity classifies road traffic at departure time.
type RushHourSeverity string

const (
	RushNone     RushHourSeverity = "none"
	RushModerate RushHourSeverity = "moderate"
	RushHeavy    RushHourSeverity = "heavy"
)

// TrafficMultiplier returns the drive time factor for the severity.
func (s RushHourSeverity) TrafficMultiplier() float64 {
	switch s {
	case RushHeavy:
		return 1.35
	case RushModerate:
		return 1.15
	default:
		return 1.0
	}
}

// HolidaySeverity classifies how crowded a holiday period is.
type HolidaySeverity string

const (
	HolidayLight    HolidaySeverity = "light"
	HolidayModerate HolidaySeverity = "moderate"
	HolidayHeavy    HolidaySeverity = "heavy"
	HolidayExtreme  HolidaySeverity = "extreme"
)

// Severe reports whether the period is heavy or extreme.
func (s HolidaySeverity) Severe() bool {
	return s == HolidayHeavy || s == HolidayExtreme
}

// HolidayImpact describes a detected holiday travel period.
type HolidayImpact struct {
	Name     string          `json:"name"`
	Severity HolidaySeverity `json:"severity"`

	// SecurityMultiplier scales the security stage range; 1.0 is a normal day.
	SecurityMultiplier float64 `json:"securityMultiplier"`

	Description string `json:"description"`
}

// Conditions is the travel climate derived from a departure timestamp.
type Conditions struct {
	IsRushHour       bool             `json:"isRushHour"`
	RushHourSeverity RushHourSeverity `json:"rushHourSeverity"`

	// HolidayImpact is nil when the date falls outside every holiday period.
	HolidayImpact *HolidayImpact `json:"holidayImpact"`

	// TrafficMultiplier applies to drive minutes.
	TrafficMultiplier float64 `json:"trafficMultiplier"`

	// SecurityMultiplier applies to the security range.
	SecurityMultiplier float64 `json:"securityMultiplier"`

	Notes []string `json:"notes"`
}
