package news

import (
	"context"
	"log/slog"
	"time"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/orchestrate"
)

// Search implements spec §4.9's search(q, limit, lang): a localized live query against
// the news aggregator, with the same resolve/image-recovery cascade as the ingest
// cycle, warming the cache via INSERT OR IGNORE so repeated searches don't reset an
// existing row's approval state.
func (w *Worker) Search(ctx context.Context, q string, limit int, lang string) ([]*entity.Hit, error) {
	if limit <= 0 {
		limit = readLimit
	}

	query := w.applyTopicConstraint(q)
	res, err := w.News.Search(ctx, adapter.Request{Query: query, Region: lang, Limit: limit, Lang: lang})
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Hit, 0, len(res))
	for _, h := range res {
		resolved := h.URL
		if w.Resolver != nil {
			resolved = w.Resolver.Resolve(ctx, h.URL)
		}
		h.URL = resolved

		if h.Image == nil && w.Enricher != nil {
			w.Enricher.Enrich(ctx, h)
		}
		if h.Image == nil && w.Images != nil {
			if found := w.Images.FindImage(ctx, h.Title); found != "" {
				h.Image = &found
			}
		}

		out = append(out, h)
		w.warmCache(ctx, h)
	}
	return out, nil
}

// applyTopicConstraint appends the active-topic OR-clause the same way the
// Orchestrator does (spec §4.8 step 2), so a live news search honors the same topic
// scoping as the cached feed.
func (w *Worker) applyTopicConstraint(query string) string {
	if w.Topics == nil {
		return query
	}
	clause := w.Topics.ActiveTopicQuery()
	if clause == "" {
		return query
	}
	return query + ` AND (` + clause + `)`
}

// warmCache persists a freshly searched hit via INSERT OR IGNORE (spec §4.9: "persists
// new rows ... so live searches warm the cache"). Failures are logged, not propagated —
// a cache-warm miss never fails the search itself.
func (w *Worker) warmCache(ctx context.Context, h *entity.Hit) {
	row := &entity.CachedArticle{
		ID:        orchestrate.HashID(orchestrate.NormalizeURL(h.URL)),
		Title:     h.Title,
		URL:       h.URL,
		Published: h.PublishedAt,
		Source:    h.Engine,
		Image:     h.Image,
		Timestamp: float64(time.Now().Unix()),
		Snippet:   h.Snippet,
	}
	if err := w.Store.InsertIgnoreOne(ctx, row); err != nil {
		w.Logger.Debug("news worker: cache warm failed", slog.Any("error", err))
	}
}
