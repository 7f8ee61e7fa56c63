package worker

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// globalTestMetrics is a shared metrics instance for tests to avoid re-registering
// Prometheus collectors against the default registry on every test.
var globalTestMetrics = NewWorkerMetrics()

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.HealthPort != 9091 {
		t.Errorf("Expected HealthPort 9091, got %d", config.HealthPort)
	}
}

func TestWorkerConfig_Validate_HealthPortInRange(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("Expected valid default config, got error: %v", err)
	}
}

func TestWorkerConfig_Validate_HealthPortTooLow(t *testing.T) {
	config := DefaultConfig()
	config.HealthPort = 80
	if err := config.Validate(); err == nil {
		t.Error("Expected validation error for HealthPort below 1024")
	}
}

func TestWorkerConfig_Validate_HealthPortTooHigh(t *testing.T) {
	config := DefaultConfig()
	config.HealthPort = 70000
	if err := config.Validate(); err == nil {
		t.Error("Expected validation error for HealthPort above 65535")
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	defaults := DefaultConfig()
	if config.HealthPort != defaults.HealthPort {
		t.Errorf("Expected default HealthPort, got %d", config.HealthPort)
	}

	if buf.Len() > 0 {
		t.Errorf("Expected no warnings, got: %s", buf.String())
	}
}

func TestLoadConfigFromEnv_ValidOverride(t *testing.T) {
	setEnv(t, "WORKER_HEALTH_PORT", "9200")
	defer unsetEnv(t, "WORKER_HEALTH_PORT")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if config.HealthPort != 9200 {
		t.Errorf("Expected HealthPort 9200, got %d", config.HealthPort)
	}
}

func TestLoadConfigFromEnv_InvalidHealthPort(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"Too low", "80"},
		{"Too high", "99999"},
		{"Invalid format", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, "WORKER_HEALTH_PORT", tt.value)
			defer unsetEnv(t, "WORKER_HEALTH_PORT")

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			config, err := LoadConfigFromEnv(logger, globalTestMetrics)
			if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
			if config.HealthPort != DefaultConfig().HealthPort {
				t.Errorf("Expected default HealthPort, got %d", config.HealthPort)
			}

			logOutput := buf.String()
			if !strings.Contains(logOutput, "Configuration fallback applied") {
				t.Error("Expected fallback warning in logs")
			}
		})
	}
}
