package airport

import (
	"github.com/TaylorONeal/jetsweep/pkg/timerange"
)

// Tier is a coarse airport-size classification driving default friction ranges.
type Tier string

const (
	TierMega    Tier = "MEGA"
	TierLarge   Tier = "LARGE"
	TierMedium  Tier = "MEDIUM"
	TierGeneric Tier = "GENERIC"
)

// AllTiers returns every tier from smallest to largest.
func AllTiers() []Tier {
	return []Tier{TierGeneric, TierMedium, TierLarge, TierMega}
}

// Rank orders tiers by size, GENERIC being 0.
func (t Tier) Rank() int {
	switch t {
	case TierMega:
		return 3
	case TierLarge:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierMega, TierLarge, TierMedium, TierGeneric:
		return true
	}
	return false
}

// Sentinel codes for airports that are not in the catalog.
const (
	OtherLarge    = "OTHER_LARGE"
	OtherRegional = "OTHER_REGIONAL"
)

// Friction holds the per-stage duration contributions of an airport.
type Friction struct {
	// Walk is the terminal walk from security to the gate.
	Walk timerange.Range `json:"walk"`

	// Curb is curbside drop-off to the terminal entrance.
	Curb timerange.Range `json:"curb"`

	// Parking is parking plus shuttle to the terminal.
	Parking timerange.Range `json:"parking"`

	// Rideshare is the airport's rideshare pickup friction.
	Rideshare timerange.Range `json:"rideshare"`

	// SecurityAdd is added on top of the screening lane base time.
	SecurityAdd timerange.Range `json:"securityAdd"`

	// BaggageAdd is added on top of the bag drop base time.
	BaggageAdd timerange.Range `json:"baggageAdd"`

	// TypicalDriveTime is the default drive in minutes from the city center.
	TypicalDriveTime int `json:"typicalDriveTime"`
}

// Profile describes an airport and its per-stage friction.
type Profile struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
	Friction

	// PainPoint is an optional advisory describing the airport's characteristic bottleneck.
	PainPoint string `json:"painPoint,omitempty"`
}

// HasPainPoint reports whether the profile carries an advisory.
func (p Profile) HasPainPoint() bool {
	return p.PainPoint != ""
}

// Option is an entry for an airport picker.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}
