package worker

import (
	"fmt"
	"log/slog"

	"topicscope/internal/pkg/config"
)

// WorkerConfig holds the configuration for the headless ingest process (cmd/worker).
// Unlike the teacher's original single-daily-cron-job model, the News and Video Feed
// Workers each self-schedule internally ("@every 60s", spec §4.9/§4.10), so the only
// thing left for the wrapping process to configure is where its own health/metrics
// surface listens.
type WorkerConfig struct {
	// HealthPort is the port number for the health check and metrics HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		HealthPort: 9091,
	}
}

// Validate checks if the configuration values are valid.
func (c *WorkerConfig) Validate() error {
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		return fmt.Errorf("health port: %w", err)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables with
// validation and automatic fallback to the default value on failure (fail-open:
// this never returns a non-nil error, matching the teacher's loader contract).
//
// Environment variables:
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
