package airport

import (
	"github.com/TaylorONeal/jetsweep/pkg/timerange"
)

func r(lo, hi int) timerange.Range { return timerange.Range{Min: lo, Max: hi} }

var tierDefaults = map[Tier]Friction{
	TierMega: {
		Walk:             r(15, 25),
		Curb:             r(20, 30),
		Parking:          r(20, 30),
		Rideshare:        r(25, 40),
		SecurityAdd:      r(20, 30),
		BaggageAdd:       r(20, 30),
		TypicalDriveTime: 35,
	},
	TierLarge: {
		Walk:             r(10, 20),
		Curb:             r(15, 25),
		Parking:          r(15, 25),
		Rideshare:        r(15, 30),
		SecurityAdd:      r(15, 25),
		BaggageAdd:       r(15, 25),
		TypicalDriveTime: 25,
	},
	TierMedium: {
		Walk:             r(8, 15),
		Curb:             r(10, 20),
		Parking:          r(10, 20),
		Rideshare:        r(10, 20),
		SecurityAdd:      r(10, 20),
		BaggageAdd:       r(10, 20),
		TypicalDriveTime: 20,
	},
	TierGeneric: {
		Walk:             r(5, 12),
		Curb:             r(5, 15),
		Parking:          r(5, 15),
		Rideshare:        r(5, 15),
		SecurityAdd:      r(5, 15),
		BaggageAdd:       r(5, 15),
		TypicalDriveTime: 15,
	},
}

// TierDefaults returns the default friction for a tier. Unknown tiers get GENERIC.
func TierDefaults(t Tier) Friction {
	if !t.Valid() {
		t = TierGeneric
	}
	return tierDefaults[t]
}

// override replaces individual friction fields for one airport. Zero ranges fall through
// to the tier default. Parking and drive time are never overridden.
type override struct {
	walk, curb, rideshare, securityAdd, baggageAdd timerange.Range
	painPoint                                      string
}

func (o override) apply(f Friction) Friction {
	pick := func(v, def timerange.Range) timerange.Range {
		if v == (timerange.Range{}) {
			return def
		}
		return v
	}
	f.Walk = pick(o.walk, f.Walk)
	f.Curb = pick(o.curb, f.Curb)
	f.Rideshare = pick(o.rideshare, f.Rideshare)
	f.SecurityAdd = pick(o.securityAdd, f.SecurityAdd)
	f.BaggageAdd = pick(o.baggageAdd, f.BaggageAdd)
	return f
}

var overrides = map[string]override{
	"LAX": {
		curb:      r(25, 40),
		rideshare: r(30, 45),
		painPoint: "Curb and rideshare congestion dominate; security is rarely the bottleneck.",
	},
	"JFK": {
		curb:        r(25, 40),
		rideshare:   r(30, 45),
		securityAdd: r(25, 35),
		painPoint:   "Traffic variability and terminal differences make timing unreliable.",
	},
	"EWR": {
		curb:        r(25, 40),
		rideshare:   r(30, 45),
		securityAdd: r(25, 35),
		painPoint:   "Road access failures cause cascading delays.",
	},
	"DEN": {
		securityAdd: r(25, 40),
		walk:        r(20, 30),
		painPoint:   "Early-morning security surges are severe and sudden.",
	},
	"SEA": {
		securityAdd: r(25, 35),
		painPoint:   "Security bottlenecks form abruptly with little warning.",
	},
	"ATL": {
		walk:        r(20, 30),
		securityAdd: r(20, 30),
		painPoint:   "Train waits and sheer distance quietly add time.",
	},
	"MCO": {
		baggageAdd:  r(25, 35),
		securityAdd: r(25, 35),
		painPoint:   "Family travel and checked bags compound delays.",
	},
	"LAS": {
		securityAdd: r(20, 30),
		painPoint:   "Convention peaks overwhelm security unpredictably.",
	},
	"BOS": {
		curb:      r(20, 30),
		painPoint: "Road layout becomes confusing under pressure.",
	},
	"ORD": {
		walk:      r(15, 30),
		painPoint: "Construction and terminal sprawl introduce hidden delays.",
	},
}
