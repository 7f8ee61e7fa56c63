// Package video implements the Video Feed Worker (spec §4.10, C10): the same
// periodic ingest state machine as the News Feed Worker (C9), over video providers
// instead of RSS, with exact-id-then-fuzzy-title dedupe and a hard retention cap.
package video

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"topicscope/internal/adapter"
	httphandler "topicscope/internal/handler/http"
	"topicscope/internal/pinned"
	"topicscope/internal/store/sqlite"
	"topicscope/internal/topics"
)

// localeVariants are the three localized topic-search variants spec §4.10 requires
// ("adds three localized variants (en / ta / hi) per active topic").
var localeVariants = []string{"en", "ta", "hi"}

// Worker runs the idle -> pick-channels -> fetch-parallel -> per-entry-process ->
// upsert -> cleanup -> idle cycle over video providers.
type Worker struct {
	Store    *sqlite.VideoStore
	Video    *adapter.VideoAdapter
	Topics   *topics.Manager
	Pinned   *pinned.List
	Channels ChannelMap

	ChannelScrapeLimit int
	MaxRows            int

	Logger *slog.Logger

	// OnCycle, when set, is called after every RunCycle with the number of rows
	// upserted and the cycle's wall-clock duration. The headless ingest process
	// (cmd/worker) wires this to its own job-run metrics.
	OnCycle func(rows int, elapsed time.Duration)

	cron     *cron.Cron
	seedOnce sync.Once
}

// New builds a Worker with sane defaults for every collaborator not supplied.
func New(store *sqlite.VideoStore, topicMgr *topics.Manager, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		Store:              store,
		Video:              adapter.NewVideo(logger),
		Topics:             topicMgr,
		Pinned:             pinned.Default(),
		Channels:           DefaultChannelMap,
		ChannelScrapeLimit: 3,
		MaxRows:            200,
		Logger:             logger,
	}
}

// Start seeds synchronously if empty, then schedules RunCycle every 60s.
func (w *Worker) Start(ctx context.Context) error {
	w.seedIfEmpty(ctx)

	c := cron.New()
	if _, err := c.AddFunc("@every 60s", func() { w.RunCycle(ctx) }); err != nil {
		return err
	}
	w.cron = c
	c.Start()
	return nil
}

// Stop ends the background schedule without interrupting an in-flight cycle.
func (w *Worker) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) seedIfEmpty(ctx context.Context) {
	w.seedOnce.Do(func() {
		n, err := w.Store.Count(ctx)
		if err != nil {
			w.Logger.Warn("video worker: seed count failed", slog.Any("error", err))
			return
		}
		if n == 0 {
			w.RunCycle(ctx)
		}
	})
}

// RunCycle executes one full state-machine pass.
func (w *Worker) RunCycle(ctx context.Context) {
	start := time.Now()
	var rowCount int
	defer func() {
		elapsed := time.Since(start)
		httphandler.RecordFeedCycleDuration("video", elapsed)
		if w.OnCycle != nil {
			w.OnCycle(rowCount, elapsed)
		}
	}()

	channels := w.pickChannels()
	results := w.fetchChannels(ctx, channels)

	rows, err := w.dedupeAgainstStore(ctx, results)
	if err != nil {
		w.Logger.Warn("video worker: dedupe lookup failed", slog.Any("error", err))
		return
	}
	rowCount = len(rows)
	if dropped := len(results) - len(rows); dropped > 0 {
		httphandler.RecordDedupeDropped("video", dropped)
	}
	if len(rows) > 0 {
		if err := w.Store.Upsert(ctx, rows); err != nil {
			w.Logger.Warn("video worker: upsert failed", slog.Any("error", err))
		}
	}
	if err := w.Store.EnforceRetention(ctx, w.MaxRows); err != nil {
		w.Logger.Warn("video worker: retention enforcement failed", slog.Any("error", err))
	}

	if n, err := w.Store.Count(ctx); err == nil {
		httphandler.UpdateFeedCacheSize("video", n)
	}
}

// pickChannels implements spec §4.10: active topics mapped to channels, priority
// channels always unioned in.
func (w *Worker) pickChannels() []string {
	var active []string
	if w.Topics != nil {
		active = w.Topics.ActiveKeywords()
	}
	return w.Channels.Pick(active)
}
