package video

import (
	"context"
	"sort"
	"strings"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/geo"
)

// readLimit is the default cap applied when a caller passes limit <= 0.
const readLimit = 50

// GetVideos implements spec §4.10's read path: approved rows newest first, boosted by
// pinned priority, geo-tiered, with an empty-store synchronous-seed-once fallback.
func (w *Worker) GetVideos(ctx context.Context, limit int) ([]*entity.Hit, error) {
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
	hits = w.rankByRelevance(hits, "")
	return geo.Sort(hits), nil
}

// GetVideosByLanguage implements spec §6's getVideosByLanguage: the same read path as
// GetVideos, narrowed to the rows whose detected title language matches lang.
func (w *Worker) GetVideosByLanguage(ctx context.Context, limit int, lang string) ([]*entity.Hit, error) {
	hits, err := w.GetVideos(ctx, limit)
	if err != nil {
		return nil, err
	}
	return adapter.FilterByLanguage(hits, lang), nil
}

func (w *Worker) toHits(rows []*entity.CachedVideo) []*entity.Hit {
	out := make([]*entity.Hit, len(rows))
	for i, r := range rows {
		snippet := r.Channel
		out[i] = &entity.Hit{
			Title:       r.Title,
			URL:         r.URL,
			Snippet:     snippet,
			SourceType:  entity.SourceVideo,
			Engine:      r.Channel,
			Image:       strPtr(r.Thumbnail),
			PublishedAt: r.Published,
		}
		out[i].SetInsertionOrder(i + 1)
	}
	return out
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// rankByRelevance implements spec §4.10's priority-boost scoring: a pinned-token match
// in title/channel dominates with score 1000; otherwise relevance is built from the
// query phrase against the title (exact phrase 50, +10 per matching token) plus a flat
// +20 for a channel match. query is empty for the plain feed read, which degenerates
// every non-pinned hit to score 0 and falls back to GetApproved's newest-first order.
func (w *Worker) rankByRelevance(hits []*entity.Hit, query string) []*entity.Hit {
	qLower := strings.ToLower(strings.TrimSpace(query))
	tokens := strings.Fields(qLower)

	score := func(h *entity.Hit) int {
		if w.Pinned != nil && w.Pinned.Match(h.Title, h.Engine) {
			h.Pinned = true
			return 1000
		}
		if qLower == "" {
			return 0
		}
		titleLower := strings.ToLower(h.Title)
		s := 0
		if strings.Contains(titleLower, qLower) {
			s += 50
		}
		for _, tok := range tokens {
			if strings.Contains(titleLower, tok) {
				s += 10
			}
		}
		if strings.Contains(strings.ToLower(h.Engine), qLower) {
			s += 20
		}
		return s
	}

	scores := make(map[*entity.Hit]int, len(hits))
	for _, h := range hits {
		scores[h] = score(h)
	}
	sort.SliceStable(hits, func(i, j int) bool { return scores[hits[i]] > scores[hits[j]] })
	return hits
}
