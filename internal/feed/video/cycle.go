package video

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
)

// fetchChannels implements spec §4.10's fetch-parallel phase: a bounded pool attempts
// a direct channel scrape first, falling back to a topic-search round (using the
// channel's humanized name, fanned out across the en/ta/hi locale variants) when the
// scrape comes back empty.
func (w *Worker) fetchChannels(ctx context.Context, channels []string) []adapter.VideoResult {
	pool := w.ChannelScrapeLimit
	if pool <= 0 {
		pool = 3
	}
	sem := semaphore.NewWeighted(int64(pool))
	var mu sync.Mutex
	var out []adapter.VideoResult
	var wg sync.WaitGroup

	for _, channel := range channels {
		channel := channel
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			results, err := w.Video.ScrapeChannel(ctx, channel, pool)
			if err != nil || len(results) == 0 {
				results = w.topicSearchFallback(ctx, channel)
			}
			if len(results) == 0 {
				return
			}
			mu.Lock()
			out = append(out, results...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// topicSearchFallback runs the localized topic-search round spec §4.10 requires when a
// direct channel scrape returns nothing: one search per locale variant, query built
// from the channel's humanized name so a handle like "@BillyGrahamEA" becomes a
// meaningful search phrase.
func (w *Worker) topicSearchFallback(ctx context.Context, channel string) []adapter.VideoResult {
	limit := w.ChannelScrapeLimit
	if limit <= 0 {
		limit = 3
	}
	name := w.Channels.HumanName(channel)
	var out []adapter.VideoResult
	for _, locale := range localeVariants {
		query := name + " " + locale
		results, err := w.Video.SearchVideos(ctx, query, limit)
		if err != nil {
			w.Logger.Debug("video worker: topic-search fallback failed",
				slog.String("channel", channel), slog.String("locale", locale), slog.Any("error", err))
			continue
		}
		out = append(out, results...)
	}
	return out
}

// dedupeAgainstStore implements spec §4.10's two-pass dedupe: exact id via ExistsID,
// then fuzzy title via isFuzzyDuplicate against every stored title, checked against
// the store once up front and updated in-memory as new rows are accepted within the
// same cycle so duplicates within one fetch round are also caught.
func (w *Worker) dedupeAgainstStore(ctx context.Context, results []adapter.VideoResult) ([]*entity.CachedVideo, error) {
	existingTitles, err := w.Store.Titles(ctx)
	if err != nil {
		return nil, err
	}

	now := float64(time.Now().Unix())
	var out []*entity.CachedVideo
	for _, r := range results {
		exists, err := w.Store.ExistsID(ctx, r.VideoID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if isFuzzyDuplicate(r.Title, existingTitles) {
			continue
		}
		existingTitles = append(existingTitles, r.Title)

		out = append(out, &entity.CachedVideo{
			ID:        r.VideoID,
			Title:     r.Title,
			URL:       "https://www.youtube.com/watch?v=" + r.VideoID,
			Thumbnail: r.Thumbnail,
			Channel:   r.Channel,
			Views:     r.Views,
			Published: r.Published,
			Timestamp: now,
		})
	}
	return out, nil
}
