// Package timerange provides the minute-granularity duration range used to express
// uncertainty in itinerary stage estimates.
package timerange

import (
	"fmt"
	"math"
)

// Range is an inclusive [Min, Max] span of whole minutes.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// New returns a Range, swapping the bounds if they are reversed.
func New(lo, hi int) Range {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}
}

// Fixed returns a Range whose bounds are both m.
func Fixed(m int) Range {
	return Range{Min: m, Max: m}
}

// Add returns the elementwise sum of r and o.
func (r Range) Add(o Range) Range {
	return Range{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// Scale multiplies both bounds by f and rounds each to the nearest minute.
func (r Range) Scale(f float64) Range {
	return New(round(float64(r.Min)*f), round(float64(r.Max)*f))
}

// AtLeast raises each bound to the matching bound of floor.
func (r Range) AtLeast(floor Range) Range {
	return Range{Min: max(r.Min, floor.Min), Max: max(r.Max, floor.Max)}
}

// Shift subtracts offset from both bounds, clamping at zero.
func (r Range) Shift(offset int) Range {
	return Range{Min: max(0, r.Min-offset), Max: max(0, r.Max-offset)}
}

// Pick selects a single value inside the range: 0 yields Min, 1 yields Max.
//
// The result is round(Min + (Max-Min)*position).
func (r Range) Pick(position float64) int {
	return round(float64(r.Min) + float64(r.Max-r.Min)*position)
}

// Valid reports whether the range is non-negative and ordered.
func (r Range) Valid() bool {
	return r.Min >= 0 && r.Max >= r.Min
}

// String renders the range the way it is shown to travelers.
func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d min", r.Min)
	}
	return fmt.Sprintf("%d–%d min", r.Min, r.Max)
}

// Sum adds all ranges together.
func Sum(ranges ...Range) Range {
	var total Range
	for _, r := range ranges {
		total = total.Add(r)
	}
	return total
}

func round(v float64) int {
	return int(math.Round(v))
}
