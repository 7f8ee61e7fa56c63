// Package news implements the News Feed Worker (spec §4.9, C9): a periodic
// RSS-ingest state machine that maintains an embedded SQLite cache of approved
// articles, independent of the Orchestrator's per-request pipeline.
package news

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/enrich"
	httphandler "topicscope/internal/handler/http"
	"topicscope/internal/pinned"
	"topicscope/internal/security"
	"topicscope/internal/store/sqlite"
	"topicscope/internal/topics"
)

// Worker runs the idle -> pick-feeds -> fetch-parallel -> per-entry-process -> upsert
// -> cleanup -> idle cycle on a fixed period (spec §4.9).
type Worker struct {
	Store    *sqlite.NewsStore
	RSS      *adapter.RSSAdapter
	News     *adapter.NewsAdapter
	Resolver *security.Resolver
	Enricher *enrich.Enricher
	Images   *adapter.ImageSearchAdapter
	Topics   *topics.Manager
	Pinned   *pinned.List
	FeedMap  FeedMap

	FetchPool       int
	Retention       time.Duration
	PinnedRetention time.Duration

	Logger *slog.Logger

	// OnCycle, when set, is called after every RunCycle with the number of rows
	// upserted and the cycle's wall-clock duration. The headless ingest process
	// (cmd/worker) wires this to its own job-run metrics; the HTTP façade leaves
	// it nil since its own cycle metrics are recorded unconditionally above.
	OnCycle func(rows int, elapsed time.Duration)

	cron     *cron.Cron
	seedOnce sync.Once
}

// New builds a Worker with sane defaults for every collaborator not supplied.
func New(store *sqlite.NewsStore, topicMgr *topics.Manager, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		Store:           store,
		RSS:             adapter.NewRSS(),
		News:            adapter.NewNews(),
		Resolver:        security.NewResolver(),
		Enricher:        enrich.New(logger),
		Images:          adapter.NewImageSearch("", logger),
		Topics:          topicMgr,
		Pinned:          pinned.Default(),
		FeedMap:         DefaultFeedMap,
		FetchPool:       10,
		Retention:       72 * time.Hour,
		PinnedRetention: 7 * 24 * time.Hour,
		Logger:          logger,
	}
}

// Start seeds the store synchronously if empty, then schedules RunCycle every 60s
// using robfig/cron's "@every" spec. It returns immediately; call Stop to end the
// background schedule. Feed workers honor a single stop signal between cycles and
// never interrupt an ongoing fetch (spec §5 "Cancellation").
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
			w.Logger.Warn("news worker: seed count failed", slog.Any("error", err))
			return
		}
		if n == 0 {
			w.RunCycle(ctx)
		}
	})
}

// RunCycle executes one full state-machine pass. It never returns an error: every
// phase isolates its own failures (spec §4.9 "Per-feed failures drop silently").
func (w *Worker) RunCycle(ctx context.Context) {
	start := time.Now()
	var rows []*entity.CachedArticle
	defer func() {
		elapsed := time.Since(start)
		httphandler.RecordFeedCycleDuration("news", elapsed)
		if w.OnCycle != nil {
			w.OnCycle(len(rows), elapsed)
		}
	}()

	feedURLs := w.pickFeeds()
	entries := w.fetchParallel(ctx, feedURLs)
	rows = w.processEntries(ctx, entries)

	if len(rows) > 0 {
		if err := w.Store.Upsert(ctx, rows); err != nil {
			w.Logger.Warn("news worker: upsert failed", slog.Any("error", err))
		}
	}

	if err := w.Store.Cleanup(ctx, w.Retention, w.PinnedRetention, w.Pinned.Tokens()); err != nil {
		w.Logger.Warn("news worker: cleanup failed", slog.Any("error", err))
	}

	if n, err := w.Store.Count(ctx); err == nil {
		httphandler.UpdateFeedCacheSize("news", n)
	}
}

// pickFeeds implements spec §4.9 pick-feeds: active topics mapped to their feed URLs,
// priority feeds always unioned in, falling back to the default bundle when no topic
// is active.
func (w *Worker) pickFeeds() []string {
	var active []string
	if w.Topics != nil {
		active = w.Topics.ActiveKeywords()
	}
	return w.FeedMap.Pick(active)
}

// feedEntry carries one parsed RSS item plus the feed it came from, enough context
// for per-entry-process to do category enforcement and title/source assignment.
type feedEntry struct {
	title          string
	link           string
	summary        string
	guid           string
	published      string
	image          *string
	feedTitle      string
	isChristianity bool
}

// christianityFeedSet returns the set of feed URLs that belong to the Christianity
// topic bundle (its explicit topic mapping plus the default bundle, which is itself
// Christianity per spec §4.9). Membership in this set triggers per-entry keyword
// enforcement regardless of which topics are currently active.
func (w *Worker) christianityFeedSet() map[string]bool {
	set := make(map[string]bool)
	for _, u := range w.FeedMap.Topics["Christianity"] {
		set[u] = true
	}
	for _, u := range w.FeedMap.DefaultBundle {
		set[u] = true
	}
	return set
}
