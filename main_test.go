package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/fhsmendes/weather-widget/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "/current-weather", cfg.CurrentPath)
	assert.Equal(t, "/forecast", cfg.ForecastPath)
	assert.Equal(t, models.Celsius, cfg.Unit)
	assert.Equal(t, 2.0, cfg.RateLimit)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.Refresh)
	assert.Empty(t, cfg.ControlAddr)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadConfig_Environment(t *testing.T) {
	cfg, err := loadConfig(nil, envMap(map[string]string{
		"WEATHER_BACKEND_URL":         "http://weather:9000",
		"WEATHER_CURRENT_PATH":        "/api/now",
		"WEATHER_UNIT":                "F",
		"WEATHER_RATE_LIMIT":          "0",
		"CONTROL_ADDR":                ":8080",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "otel-collector:4317",
		"LOG_LEVEL":                   "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://weather:9000", cfg.BackendURL)
	assert.Equal(t, "/api/now", cfg.CurrentPath)
	assert.Equal(t, "/forecast", cfg.ForecastPath)
	assert.Equal(t, models.Fahrenheit, cfg.Unit)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, ":8080", cfg.ControlAddr)
	assert.Equal(t, "otel-collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	cfg, err := loadConfig(
		[]string{"-backend", "http://other", "-unit", "c", "-control", ":9090", "-refresh", "30s"},
		envMap(map[string]string{
			"WEATHER_BACKEND_URL": "http://weather:9000",
			"WEATHER_UNIT":        "f",
			"CONTROL_ADDR":        ":8080",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "http://other", cfg.BackendURL)
	assert.Equal(t, models.Celsius, cfg.Unit)
	assert.Equal(t, ":9090", cfg.ControlAddr)
	assert.Equal(t, 30*time.Second, cfg.Refresh)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "rate limit not a number", env: map[string]string{"WEATHER_RATE_LIMIT": "fast"}},
		{name: "negative rate limit", env: map[string]string{"WEATHER_RATE_LIMIT": "-1"}},
		{name: "log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "unit", env: map[string]string{"WEATHER_UNIT": "kelvin"}},
		{name: "refresh", args: []string{"-refresh", "0s"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}
