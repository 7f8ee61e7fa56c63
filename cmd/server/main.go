// Command server runs the topicscope HTTP façade: the discovery core, the News and
// Video Feed Workers, the Legal Fan-Out, and the Trend Miner, wired behind a thin
// net/http.ServeMux layer (spec §6).
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"topicscope/internal/adapter"
	"topicscope/internal/config"
	"topicscope/internal/feed/news"
	"topicscope/internal/feed/video"
	"topicscope/internal/forecast"
	hhttp "topicscope/internal/handler/http"
	"topicscope/internal/handler/http/discovery"
	"topicscope/internal/handler/http/requestid"
	"topicscope/internal/legal"
	"topicscope/internal/llm"
	"topicscope/internal/orchestrate"
	"topicscope/internal/store/sqlite"
	"topicscope/internal/topics"
	"topicscope/internal/trend"

	pkgconfig "topicscope/pkg/config"
)

// @title           topicscope API
// @version         1.0
// @description     Topic-scoped discovery, feed caching, legal research, and trend forecasting.

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := initLogger(cfg.LogLevel)

	newsDB := openStore(logger, "news", cfg.NewsDBPath)
	defer closeStore(logger, "news", newsDB)
	videoDB := openStore(logger, "video", cfg.VideoDBPath)
	defer closeStore(logger, "video", videoDB)

	newsStore, err := sqlite.NewNewsStore(newsDB)
	if err != nil {
		logger.Error("open news store", slog.Any("error", err))
		os.Exit(1)
	}
	videoStore, err := sqlite.NewVideoStore(videoDB)
	if err != nil {
		logger.Error("open video store", slog.Any("error", err))
		os.Exit(1)
	}

	topicMgr, err := topics.Load(cfg.TopicStatePath)
	if err != nil {
		logger.Error("load topic state", slog.Any("error", err))
		os.Exit(1)
	}

	intents, err := adapter.LoadIntents(pkgconfig.GetEnvString("INTENTS_CONFIG_PATH", "./config/intents.yaml"))
	if err != nil {
		logger.Warn("intents config unavailable, using defaults", slog.Any("error", err))
	}

	llmClient := buildLLM(cfg, logger)
	forecaster := buildForecaster(logger)

	orchestrator := orchestrate.New(topicMgr, intents, logger)
	orchestrator.Filter = orchestrate.FilterThreshold(cfg.FilterThreshold)

	newsWorker := news.New(newsStore, topicMgr, logger)
	if m, err := news.LoadFeedMap(pkgconfig.GetEnvString("NEWS_FEEDMAP_PATH", "./config/feedmap.yaml")); err != nil {
		logger.Warn("news feed map unavailable, using defaults", slog.Any("error", err))
	} else {
		newsWorker.FeedMap = m
	}
	newsWorker.FetchPool = cfg.NewsFetchPool
	newsWorker.Retention = cfg.NewsRetention
	newsWorker.PinnedRetention = cfg.NewsPinnedRetention

	videoWorker := video.New(videoStore, topicMgr, logger)
	if m, err := video.LoadChannelMap(pkgconfig.GetEnvString("VIDEO_CHANNELMAP_PATH", "./config/channelmap.yaml")); err != nil {
		logger.Warn("video channel map unavailable, using defaults", slog.Any("error", err))
	} else {
		videoWorker.Channels = m
	}
	videoWorker.MaxRows = cfg.VideoMaxRows

	legalAsker := legal.New(llmClient, topicMgr, logger)
	trendMiner := trend.New(llmClient, forecaster, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := newsWorker.Start(ctx); err != nil {
		logger.Error("start news worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer newsWorker.Stop()
	if err := videoWorker.Start(ctx); err != nil {
		logger.Error("start video worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer videoWorker.Stop()

	version := pkgconfig.GetEnvString("VERSION", "dev")
	handler := setupServer(logger, serverDeps{
		newsDB:       newsDB,
		videoDB:      videoDB,
		version:      version,
		orchestrator: orchestrator,
		newsWorker:   newsWorker,
		videoWorker:  videoWorker,
		legalAsker:   legalAsker,
		trendMiner:   trendMiner,
		topics:       topicMgr,
	})

	runServer(ctx, logger, handler, pkgconfig.GetEnvString("PORT", "8080"))
}

func initLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	if level == "debug" {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func openStore(logger *slog.Logger, name, path string) *sql.DB {
	db, err := sqlite.Open(path)
	if err != nil {
		logger.Error("open "+name+" store", slog.Any("error", err))
		os.Exit(1)
	}
	return db
}

func closeStore(logger *slog.Logger, name string, db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Error("close "+name+" store", slog.Any("error", err))
	}
}

// buildLLM constructs the completion backend named by cfg.LLMProvider, wrapped in a
// primary/fallback pair when both provider keys are present (spec §6: a missing
// provider degrades the trend miner and legal synthesis without affecting search).
func buildLLM(cfg *config.Core, logger *slog.Logger) llm.Client {
	var primary llm.Client
	switch cfg.LLMProvider {
	case "claude":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("LLM_PROVIDER=claude but ANTHROPIC_API_KEY is unset, using noop")
			return llm.NoOp{}
		}
		primary = llm.NewClaude(cfg.AnthropicAPIKey, "")
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("LLM_PROVIDER=openai but OPENAI_API_KEY is unset, using noop")
			return llm.NoOp{}
		}
		primary = llm.NewOpenAI(cfg.OpenAIAPIKey, "")
	default:
		logger.Warn("LLM_PROVIDER unset, trend/legal synthesis disabled")
		return llm.NoOp{}
	}

	if cfg.OpenAIAPIKey != "" && cfg.LLMProvider != "openai" {
		return llm.NewFallback(primary, llm.NewOpenAI(cfg.OpenAIAPIKey, ""), logger)
	}
	if cfg.AnthropicAPIKey != "" && cfg.LLMProvider != "claude" {
		return llm.NewFallback(primary, llm.NewClaude(cfg.AnthropicAPIKey, ""), logger)
	}
	return primary
}

// buildForecaster dials the external forecasting service when FORECAST_GRPC_ADDR is
// set, else degrades to forecast.NoOp (spec §4.13: the forecaster is an out-of-scope
// external collaborator).
func buildForecaster(logger *slog.Logger) forecast.Forecaster {
	addr := pkgconfig.GetEnvString("FORECAST_GRPC_ADDR", "")
	if addr == "" {
		return forecast.NoOp{}
	}
	client, err := forecast.NewGRPCClient(addr, logger)
	if err != nil {
		logger.Warn("forecast service unavailable, using noop", slog.Any("error", err))
		return forecast.NoOp{}
	}
	return client
}

// serverDeps bundles every collaborator setupRoutes wires a handler to.
type serverDeps struct {
	newsDB  *sql.DB
	videoDB *sql.DB
	version string

	orchestrator *orchestrate.Orchestrator
	newsWorker   *news.Worker
	videoWorker  *video.Worker
	legalAsker   *legal.Asker
	trendMiner   *trend.Miner
	topics       *topics.Manager
}

// setupServer registers every spec §6 operation on a ServeMux and wraps it with the
// ambient middleware chain.
func setupServer(logger *slog.Logger, deps serverDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", &hhttp.HealthHandler{DB: deps.newsDB, Version: deps.version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: deps.newsDB})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("/search", &discovery.RunHandler{Orchestrator: deps.orchestrator})

	mux.Handle("/news", &discovery.NewsHandler{Worker: deps.newsWorker})
	mux.Handle("/news/lang", &discovery.NewsByLanguageHandler{Worker: deps.newsWorker})
	mux.Handle("/news/search", &discovery.NewsSearchHandler{Worker: deps.newsWorker})

	mux.Handle("/videos", &discovery.TrendingHandler{Worker: deps.videoWorker})
	mux.Handle("/videos/lang", &discovery.VideosByLanguageHandler{Worker: deps.videoWorker})
	mux.Handle("/videos/search", &discovery.VideoSearchHandler{Worker: deps.videoWorker})

	mux.Handle("/legal/ask", &discovery.LegalAskHandler{Asker: deps.legalAsker})
	mux.Handle("/trend/analyze", &discovery.TrendAnalyzeHandler{Miner: deps.trendMiner})

	mux.Handle("/topics/toggle", &discovery.ToggleTopicHandler{Topics: deps.topics})
	mux.Handle("/topics/active", &discovery.ActiveKeywordsHandler{Topics: deps.topics})

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps handler with the ambient chain (spec §2.1): request ID,
// single-tier rate limiting, recovery, logging, body/input limits, and metrics.
// Middleware order mirrors the teacher's reverse-apply convention: the first call
// listed below is the outermost layer a request passes through.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(
		pkgconfig.GetEnvInt("RATE_LIMIT_REQUESTS", 120),
		pkgconfig.GetEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server on port and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
