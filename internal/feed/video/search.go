package video

import (
	"context"
	"log/slog"
	"time"

	"topicscope/internal/domain/entity"
)

// Search implements spec §4.10's search(q, limit, lang): a live YouTube search, ranked
// by the same priority-boost formula as the cached read path, warming the cache via
// Upsert so repeated searches feed future reads.
func (w *Worker) Search(ctx context.Context, q string, limit int, lang string) ([]*entity.Hit, error) {
	if limit <= 0 {
		limit = readLimit
	}

	results, err := w.Video.SearchVideos(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	hits := make([]*entity.Hit, 0, len(results))
	rows := make([]*entity.CachedVideo, 0, len(results))
	now := float64(time.Now().Unix())
	for i, r := range results {
		h := &entity.Hit{
			Title:       r.Title,
			URL:         "https://www.youtube.com/watch?v=" + r.VideoID,
			Snippet:     r.Snippet,
			SourceType:  entity.SourceVideo,
			Engine:      r.Channel,
			Image:       strPtr(r.Thumbnail),
			PublishedAt: r.Published,
		}
		h.SetInsertionOrder(i + 1)
		hits = append(hits, h)

		rows = append(rows, &entity.CachedVideo{
			ID:        r.VideoID,
			Title:     r.Title,
			URL:       h.URL,
			Thumbnail: r.Thumbnail,
			Channel:   r.Channel,
			Views:     r.Views,
			Published: r.Published,
			Timestamp: now,
		})
	}

	hits = w.rankByRelevance(hits, q)
	w.warmCache(ctx, rows)
	return hits, nil
}

// warmCache persists freshly searched rows (spec §4.10: "search results warm the
// cache"). Failures are logged, not propagated — a cache-warm miss never fails search.
func (w *Worker) warmCache(ctx context.Context, rows []*entity.CachedVideo) {
	if len(rows) == 0 {
		return
	}
	if err := w.Store.Upsert(ctx, rows); err != nil {
		w.Logger.Debug("video worker: cache warm failed", slog.Any("error", err))
	}
}
