package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var (
	ErrBadThreshold  = errors.New("alert threshold must be within [0, 100]")
	ErrBadCoordinate = errors.New("coordinate out of range")
)

// Config holds all service settings, populated from UVBOARD_* environment
// variables with defaults where unset.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	MeteoBaseURL string        `envconfig:"METEO_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	MeteoTimeout time.Duration `envconfig:"METEO_TIMEOUT" default:"10s"`
	Latitude     float64       `envconfig:"LATITUDE" default:"37.7749"`
	Longitude    float64       `envconfig:"LONGITUDE" default:"-122.4194"`

	AlertThreshold int `envconfig:"ALERT_THRESHOLD" default:"70"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("uvboard", &cfg); err != nil {
		return nil, fmt.Errorf("process environment, %w", err)
	}
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Valid() error {
	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return fmt.Errorf("%d, %w", c.AlertThreshold, ErrBadThreshold)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %g, %w", c.Latitude, ErrBadCoordinate)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %g, %w", c.Longitude, ErrBadCoordinate)
	}
	return nil
}

// Logger builds a slog logger per the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
