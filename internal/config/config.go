// Package config loads environment-driven configuration for the discovery core and
// its background workers, following the generic load-with-fallback helpers in
// pkg/config: missing or invalid values degrade to documented defaults with a logged
// warning, never a panic (spec §6, §9 "explicit objects constructed at startup").
package config

import (
	"time"

	pkgconfig "topicscope/pkg/config"
)

// Core holds every environment-driven setting the discovery pipeline and feed workers
// need at startup. It is constructed once in main and passed via dependency injection;
// no package-level mutable globals hold it.
type Core struct {
	// PaidSearchAPIKey, when set, makes the orchestrator prefer the paid web search
	// adapter over the free one for this process (spec §4.8 step 3).
	PaidSearchAPIKey string

	// LLM selects which completion backend to construct. "openai", "claude", or ""
	// (falls back to a noop backend that degrades the trend miner and legal synthesis
	// without affecting search, per spec §6).
	LLMProvider    string
	OpenAIAPIKey   string
	AnthropicAPIKey string

	// TopicStatePath is the JSON file path for the Topic Manager (§4.7).
	TopicStatePath string

	// NewsDBPath / VideoDBPath are the embedded SQLite file paths for the two feed
	// stores (§3, §6).
	NewsDBPath  string
	VideoDBPath string

	// AnalyticsSnapshotPath is the JSON file the Trend Miner's latest chart descriptor
	// is written to (§6).
	AnalyticsSnapshotPath string

	// Pool sizes, hard caps per spec §5.
	OrchestratorPool   int
	EnrichmentPool     int
	NewsFetchPool      int
	NewsLangFanoutPool int
	LegalFanoutPool    int
	TrendFanoutPool    int

	// Periods.
	NewsWorkerPeriod  time.Duration
	VideoWorkerPeriod time.Duration

	// Retention.
	NewsRetention       time.Duration
	NewsPinnedRetention time.Duration
	VideoMaxRows        int

	// Thresholds.
	FilterThreshold    int
	LowResultThreshold int

	LogLevel string
}

// Load reads Core from the environment, logging a warning and substituting the
// documented default for every invalid or missing value.
func Load() *Core {
	return &Core{
		PaidSearchAPIKey: pkgconfig.GetEnvString("PAID_SEARCH_API_KEY", ""),

		LLMProvider:     pkgconfig.GetEnvString("LLM_PROVIDER", ""),
		OpenAIAPIKey:    pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		AnthropicAPIKey: pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),

		TopicStatePath:        pkgconfig.GetEnvString("TOPIC_STATE_PATH", "./data/topics.json"),
		NewsDBPath:            pkgconfig.GetEnvString("NEWS_DB_PATH", "./data/news.db"),
		VideoDBPath:           pkgconfig.GetEnvString("VIDEO_DB_PATH", "./data/video.db"),
		AnalyticsSnapshotPath: pkgconfig.GetEnvString("ANALYTICS_SNAPSHOT_PATH", "./data/analytics_snapshot.json"),

		OrchestratorPool:   pkgconfig.GetEnvInt("ORCHESTRATOR_POOL", 10),
		EnrichmentPool:     pkgconfig.GetEnvInt("ENRICHMENT_POOL", 15),
		NewsFetchPool:      pkgconfig.GetEnvInt("NEWS_FETCH_POOL", 10),
		NewsLangFanoutPool: pkgconfig.GetEnvInt("NEWS_LANG_FANOUT_POOL", 3),
		LegalFanoutPool:    pkgconfig.GetEnvInt("LEGAL_FANOUT_POOL", 3),
		TrendFanoutPool:    pkgconfig.GetEnvInt("TREND_FANOUT_POOL", 5),

		NewsWorkerPeriod:  pkgconfig.GetEnvDuration("NEWS_WORKER_PERIOD", 60*time.Second),
		VideoWorkerPeriod: pkgconfig.GetEnvDuration("VIDEO_WORKER_PERIOD", 60*time.Second),

		NewsRetention:       pkgconfig.GetEnvDuration("NEWS_RETENTION", 72*time.Hour),
		NewsPinnedRetention: pkgconfig.GetEnvDuration("NEWS_PINNED_RETENTION", 7*24*time.Hour),
		VideoMaxRows:        pkgconfig.GetEnvInt("VIDEO_MAX_ROWS", 200),

		FilterThreshold:    pkgconfig.GetEnvInt("FILTER_THRESHOLD", 5),
		LowResultThreshold: pkgconfig.GetEnvInt("LOW_RESULT_THRESHOLD", 10),

		LogLevel: pkgconfig.GetEnvString("LOG_LEVEL", "info"),
	}
}
