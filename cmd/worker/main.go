// Command worker runs a headless instance of the News and Video Feed Workers
// (spec §4.9, §4.10) without the HTTP façade: an ingest-only process suited to
// running as a separate deployment unit from cmd/server, exposing only a
// liveness/readiness/metrics surface for an orchestrator to watch.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topicscope/internal/config"
	"topicscope/internal/feed/news"
	"topicscope/internal/feed/video"
	workerpkg "topicscope/internal/infra/worker"
	"topicscope/internal/store/sqlite"
	"topicscope/internal/topics"

	pkgconfig "topicscope/pkg/config"
)

func main() {
	cfg := config.Load()
	logger := initLogger(cfg.LogLevel)

	metrics := workerpkg.NewWorkerMetrics()
	metrics.MustRegister()

	workerCfg, _ := workerpkg.LoadConfigFromEnv(logger, metrics)

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

	newsWorker := news.New(newsStore, topicMgr, logger)
	if m, err := news.LoadFeedMap(pkgconfig.GetEnvString("NEWS_FEEDMAP_PATH", "./config/feedmap.yaml")); err != nil {
		logger.Warn("news feed map unavailable, using defaults", slog.Any("error", err))
	} else {
		newsWorker.FeedMap = m
	}
	newsWorker.FetchPool = cfg.NewsFetchPool
	newsWorker.Retention = cfg.NewsRetention
	newsWorker.PinnedRetention = cfg.NewsPinnedRetention
	newsWorker.OnCycle = jobRunHook(metrics)

	videoWorker := video.New(videoStore, topicMgr, logger)
	if m, err := video.LoadChannelMap(pkgconfig.GetEnvString("VIDEO_CHANNELMAP_PATH", "./config/channelmap.yaml")); err != nil {
		logger.Warn("video channel map unavailable, using defaults", slog.Any("error", err))
	} else {
		videoWorker.Channels = m
	}
	videoWorker.MaxRows = cfg.VideoMaxRows
	videoWorker.OnCycle = jobRunHook(metrics)

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

	health := workerpkg.NewHealthServer(fmt.Sprintf(":%d", workerCfg.HealthPort), logger)
	health.SetReady(true)
	go func() {
		if err := health.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	logger.Info("worker running", slog.Int("health_port", workerCfg.HealthPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")
	health.SetReady(false)
	cancel()
}

// jobRunHook adapts a Worker.OnCycle callback into the teacher's generic cron-job
// instrumentation (internal/infra/worker.WorkerMetrics), recorded once per feed
// worker cycle regardless of which feed produced it.
func jobRunHook(metrics *workerpkg.WorkerMetrics) func(rows int, elapsed time.Duration) {
	return func(rows int, elapsed time.Duration) {
		metrics.RecordJobRun("success")
		metrics.RecordJobDuration(elapsed.Seconds())
		metrics.RecordFeedsProcessed(rows)
		metrics.RecordLastSuccess()
	}
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
