package timeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
)

// ServiceConfig holds configuration for the timeline service.
type ServiceConfig struct {
	// Airports resolves airport queries (default: built-in catalog).
	Airports AirportResolver

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock returns the evaluation time (default: time.Now).
	Clock func() time.Time

	// Tracer for computation spans (default: global tracer).
	Tracer trace.Tracer

	// Metrics records computations (optional).
	Metrics *Metrics
}

// Service wraps the engine with a clock, logging and telemetry.
type Service struct {
	engine   *Engine
	airports AirportResolver
	logger   zerolog.Logger
	clock    func() time.Time
	tracer   trace.Tracer
	metrics  *Metrics
}

// NewService creates a new timeline service.
func NewService(cfg ServiceConfig) *Service {
	airports := cfg.Airports
	if airports == nil {
		airports = airport.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}

	return &Service{
		engine:   NewEngine(airports),
		airports: airports,
		logger:   cfg.Logger,
		clock:    clock,
		tracer:   tracer,
		metrics:  cfg.Metrics,
	}
}

// Compute computes an itinerary evaluated at the service clock's current time.
func (s *Service) Compute(ctx context.Context, in Inputs) *Result {
	return s.ComputeAt(ctx, in, s.clock())
}

// ComputeAt computes an itinerary evaluated at now.
func (s *Service) ComputeAt(ctx context.Context, in Inputs, now time.Time) *Result {
	ctx, span := s.tracer.Start(ctx, "timeline.Compute",
		trace.WithAttributes(
			attribute.String("airport.query", in.Airport),
			attribute.String("trip_type", string(in.TripType)),
			attribute.String("transport", string(in.TransportType)),
			attribute.String("risk_preference", string(in.RiskPreference)),
		),
	)
	defer span.End()

	res := s.engine.Compute(in, now)

	span.SetAttributes(
		attribute.String("airport.code", res.AirportProfile.Code),
		attribute.Bool("airport.estimate", res.IsAirportEstimate),
		attribute.Int("stages", len(res.Stages)),
		attribute.String("confidence", string(res.Confidence)),
		attribute.Bool("leave_now", res.IsLeaveNow),
	)

	if s.metrics != nil {
		s.metrics.Record(ctx, in, res)
	}

	event := s.logger.Debug()
	if res.IsLeaveNow {
		event = s.logger.Info()
	}
	event.
		Str("airport", res.AirportProfile.Code).
		Bool("airport_estimate", res.IsAirportEstimate).
		Time("departure", in.DepartureTime).
		Time("leave_time", res.LeaveTime).
		Bool("leave_now", res.IsLeaveNow).
		Str("confidence", string(res.Confidence)).
		Str("stress_level", string(res.StressLevel)).
		Msg("computed timeline")

	return res
}

// ResolveAirport resolves an airport query.
func (s *Service) ResolveAirport(query string) (airport.Profile, bool) {
	return s.airports.Resolve(query)
}

// Conditions analyzes a departure time.
func (s *Service) Conditions(departure time.Time) conditions.Conditions {
	return conditions.Analyze(departure)
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock()
}
