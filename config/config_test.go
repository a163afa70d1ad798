package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.Nil(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.MeteoTimeout)
	assert.Equal(t, 37.7749, cfg.Latitude)
	assert.Equal(t, -122.4194, cfg.Longitude)
	assert.Equal(t, 70, cfg.AlertThreshold)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UVBOARD_ADDR", ":9090")
	t.Setenv("UVBOARD_LOG_FORMAT", "json")
	t.Setenv("UVBOARD_ALERT_THRESHOLD", "90")

	cfg, err := Load()
	require.Nil(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 90, cfg.AlertThreshold)
}

func TestValid(t *testing.T) {
	testData := map[string]struct {
		mutate func(*Config)
		err    error
	}{
		"threshold above range": {
			mutate: func(c *Config) { c.AlertThreshold = 101 },
			err:    ErrBadThreshold,
		},
		"threshold below range": {
			mutate: func(c *Config) { c.AlertThreshold = -1 },
			err:    ErrBadThreshold,
		},
		"latitude out of range": {
			mutate: func(c *Config) { c.Latitude = 91 },
			err:    ErrBadCoordinate,
		},
		"longitude out of range": {
			mutate: func(c *Config) { c.Longitude = -181 },
			err:    ErrBadCoordinate,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load()
			require.Nil(t, err)

			td.mutate(cfg)
			assert.ErrorIs(t, cfg.Valid(), td.err)
		})
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("UVBOARD_ALERT_THRESHOLD", "400")
	_, err := Load()
	assert.ErrorIs(t, err, ErrBadThreshold)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	logger := cfg.Logger(&buf)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	cfg = &Config{LogLevel: "warn", LogFormat: "text"}
	logger = cfg.Logger(&buf)
	logger.Info("dropped")
	assert.Empty(t, buf.String())
	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
