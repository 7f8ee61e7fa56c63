package news

import (
	"context"
	"sort"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/geo"
)

// readLimit is the default cap applied when a caller passes limit <= 0.
const readLimit = 50

// GetNews implements spec §4.9's read path: approved rows newest first, boosted by
// pinned priority, geo-tiered, with an empty-store synchronous-seed-once fallback.
func (w *Worker) GetNews(ctx context.Context, limit int) ([]*entity.Hit, error) {
	if limit <= 0 {
		limit = readLimit
	}

	rows, err := w.Store.GetApproved(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		w.RunCycle(ctx)
		rows, err = w.Store.GetApproved(ctx, limit)
		if err != nil {
			return nil, err
		}
	}

	hits := w.toHits(rows)
	hits = w.sortByPriority(hits)
	return geo.Sort(hits), nil
}

// GetNewsByLanguage implements spec §6's getNewsByLanguage: the same read path as
// GetNews, narrowed to the rows whose detected title language matches lang.
func (w *Worker) GetNewsByLanguage(ctx context.Context, limit int, lang string) ([]*entity.Hit, error) {
	hits, err := w.GetNews(ctx, limit)
	if err != nil {
		return nil, err
	}
	return adapter.FilterByLanguage(hits, lang), nil
}

// toHits projects CachedArticle rows into request-scoped Hits for the wire-compatible
// read path (spec §6 "Hit objects serialized to clients").
func (w *Worker) toHits(rows []*entity.CachedArticle) []*entity.Hit {
	out := make([]*entity.Hit, len(rows))
	for i, r := range rows {
		out[i] = &entity.Hit{
			Title:       r.Title,
			URL:         r.URL,
			Snippet:     r.Snippet,
			SourceType:  entity.SourceNews,
			Engine:      r.Source,
			Image:       r.Image,
			PublishedAt: r.Published,
		}
		out[i].SetInsertionOrder(i + 1)
	}
	return out
}

// sortByPriority implements spec §4.9's "priority-score 100 if any pinned token
// appears in title+source+snippet, else 1; stable sort by (-priority, -timestamp)".
// GetApproved already returns rows newest-first, so a stable sort by priority alone
// preserves the timestamp ordering within each priority bucket.
func (w *Worker) sortByPriority(hits []*entity.Hit) []*entity.Hit {
	priority := func(h *entity.Hit) int {
		if w.Pinned != nil && w.Pinned.Match(h.Title, h.Engine, h.Snippet) {
			h.Pinned = true
			return 100
		}
		return 1
	}
	// Scored once per hit into a pointer-keyed map so the pairing survives
	// SliceStable's in-place reordering of hits.
	scores := make(map[*entity.Hit]int, len(hits))
	for _, h := range hits {
		scores[h] = priority(h)
	}
	sort.SliceStable(hits, func(i, j int) bool { return scores[hits[i]] > scores[hits[j]] })
	return hits
}
