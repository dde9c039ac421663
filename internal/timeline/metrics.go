package timeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/TaylorONeal/jetsweep/internal/timeline"

// Metrics holds the OpenTelemetry instruments for itinerary computations.
type Metrics struct {
	computations metric.Int64Counter
	leaveNow     metric.Int64Counter
	leadTime     metric.Int64Histogram
	stressMargin metric.Int64Histogram
}

// NewMetrics creates the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	computations, err := meter.Int64Counter(
		"timeline.computations",
		metric.WithDescription("Number of itineraries computed"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, err
	}

	leaveNow, err := meter.Int64Counter(
		"timeline.leave_now",
		metric.WithDescription("Number of itineraries whose leave time had already passed"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, err
	}

	leadTime, err := meter.Int64Histogram(
		"timeline.lead_time",
		metric.WithDescription("Minutes between leave time and departure"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, err
	}

	stressMargin, err := meter.Int64Histogram(
		"timeline.stress_margin",
		metric.WithDescription("Minutes between gate arrival and boarding"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		computations: computations,
		leaveNow:     leaveNow,
		leadTime:     leadTime,
		stressMargin: stressMargin,
	}, nil
}

// Record records one computation.
func (m *Metrics) Record(ctx context.Context, in Inputs, res *Result) {
	attrs := metric.WithAttributes(
		attribute.String("airport.tier", string(res.AirportProfile.Tier)),
		attribute.String("transport", string(in.TransportType)),
		attribute.String("confidence", string(res.Confidence)),
		attribute.String("stress_level", string(res.StressLevel)),
	)

	m.computations.Add(ctx, 1, attrs)
	if res.IsLeaveNow {
		m.leaveNow.Add(ctx, 1, attrs)
	}
	m.leadTime.Record(ctx, int64(in.DepartureTime.Sub(res.LeaveTime).Minutes()), attrs)
	m.stressMargin.Record(ctx, int64(res.StressMargin), attrs)
}
