// Package main provides the entrypoint for the JetSweep API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/api"
	"github.com/TaylorONeal/jetsweep/internal/api/middleware"
	"github.com/TaylorONeal/jetsweep/internal/config"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/resilience"
	"github.com/TaylorONeal/jetsweep/internal/telemetry"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "jetsweep-api"

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg)
	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.App.Env).
		Msg("starting JetSweep API")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var log zerolog.Logger
	if cfg.Log.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stdout)
	}

	return log.Level(cfg.LogLevel()).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize OpenTelemetry
	telemetryCfg := cfg.Telemetry
	telemetryCfg.ServiceName = serviceName
	telemetryCfg.ServiceVersion = Version
	telemetryCfg.Environment = cfg.App.Env

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Float64("sample_ratio", telemetryCfg.SampleRatio).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics(nil)
	if err != nil {
		return err
	}
	timelineMetrics, err := timeline.NewMetrics()
	if err != nil {
		return err
	}

	// Recent search store
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info().Str("driver", cfg.Store.Driver).Msg("recent search store ready")

	health := resilience.NewRegistry()
	storeGuard := resilience.DefaultGuardConfig("recent-store")
	storeGuard.Registry = health
	storeGuard.Breaker.Healthy = recent.IsDataError

	recents := recent.NewService(recent.ServiceConfig{
		Repository: repo,
		Guard:      resilience.NewGuard(storeGuard),
		Logger:     log.With().Str("component", "recent").Logger(),
	})

	airports := airport.Default()
	log.Info().Int("airports", airports.Len()).Msg("airport catalog loaded")
	timelines := timeline.NewService(timeline.ServiceConfig{
		Airports: airports,
		Logger:   log.With().Str("component", "timeline").Logger(),
		Tracer:   tp.Tracer,
		Metrics:  timelineMetrics,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		Tracer:           tp.Tracer,
		Metrics:          httpMetrics,
		Timelines:        timelines,
		Airports:         airports,
		Recents:          recents,
		Health:           health,
		Location:         loc,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		RequireTLS:       cfg.HTTP.RequireTLS,
		ComputeRateLimit: cfg.HTTP.RateLimit,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("time_zone", loc.String()).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
