// Package config loads runtime settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/TaylorONeal/jetsweep/internal/database"
	"github.com/TaylorONeal/jetsweep/internal/telemetry"
)

// DefaultPath is the config file read when present.
const DefaultPath = "config.yaml"

// Recent search store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config is the full runtime configuration.
type Config struct {
	App       App                     `yaml:"app"`
	HTTP      HTTP                    `yaml:"http"`
	Log       Log                     `yaml:"log"`
	Store     Store                   `yaml:"store"`
	Postgres  database.PostgresConfig `yaml:"postgres"`
	Redis     database.RedisConfig    `yaml:"redis"`
	Telemetry telemetry.Config        `yaml:"telemetry"`
	CORS      CORS                    `yaml:"cors"`
}

type App struct {
	Env      string `yaml:"env" env:"APP_ENV" env-default:"development"`
	TimeZone string `yaml:"timeZone" env:"TIME_ZONE" env-default:"Local"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`

	// RequireTLS rejects requests a proxy marked as plain HTTP.
	RequireTLS bool `yaml:"requireTLS" env:"HTTP_REQUIRE_TLS" env-default:"false"`

	// RateLimit is the per-IP requests per minute on compute endpoints.
	RateLimit int `yaml:"rateLimit" env:"HTTP_RATE_LIMIT" env-default:"120" validate:"gte=1"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json console"`
}

type Store struct {
	Driver     string `yaml:"driver" env:"STORE_DRIVER" env-default:"memory" validate:"oneof=memory sqlite postgres redis"`
	SQLitePath string `yaml:"sqlitePath" env:"SQLITE_PATH" env-default:"jetsweep.db"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

// Load reads path when it exists and then applies environment overrides.
// Without a file the configuration comes from the environment and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated and bounded settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location returns the zone naive timestamps are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	if c.App.TimeZone == "" || strings.EqualFold(c.App.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.App.TimeZone, err)
	}
	return loc, nil
}

// LogLevel returns the configured zerolog level, defaulting to info.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
