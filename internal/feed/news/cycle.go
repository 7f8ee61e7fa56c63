package news

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/semaphore"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/orchestrate"
)

// fetchParallel pulls every feed URL through a bounded pool (spec §4.9 fetch-parallel,
// §5 "news fetcher 10"). Per-feed failures drop silently; only successfully parsed
// entries are returned.
func (w *Worker) fetchParallel(ctx context.Context, feedURLs []string) []feedEntry {
	pool := w.FetchPool
	if pool <= 0 {
		pool = 10
	}
	sem := semaphore.NewWeighted(int64(pool))
	var mu sync.Mutex
	var entries []feedEntry
	var wg sync.WaitGroup
	christianitySet := w.christianityFeedSet()

	for _, feedURL := range feedURLs {
		feedURL := feedURL
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			feed, err := w.RSS.FetchRaw(ctx, feedURL)
			if err != nil {
				w.Logger.Debug("news worker: feed fetch failed", slog.String("feed", feedURL), slog.Any("error", err))
				return
			}
			parsed := entriesFromFeed(feed, feedURL, christianitySet[feedURL])
			mu.Lock()
			entries = append(entries, parsed...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return entries
}

func entriesFromFeed(feed *gofeed.Feed, feedURL string, isChristianity bool) []feedEntry {
	feedTitle := feedURL
	if feed.Title != "" {
		feedTitle = feed.Title
	}
	out := make([]feedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		out = append(out, feedEntry{
			title:          item.Title,
			link:           item.Link,
			summary:        item.Description,
			guid:           item.GUID,
			published:      item.Published,
			image:          adapter.EntryImage(item),
			feedTitle:      feedTitle,
			isChristianity: isChristianity,
		})
	}
	return out
}

// processEntries implements spec §4.9 per-entry-process: Christianity category
// enforcement, URL resolution, image recovery cascade (RSS -> OG -> image search),
// and snippet truncation.
func (w *Worker) processEntries(ctx context.Context, entries []feedEntry) []*entity.CachedArticle {
	out := make([]*entity.CachedArticle, 0, len(entries))
	now := float64(time.Now().Unix())

	for _, e := range entries {
		if e.isChristianity && !matchesChristianity(e.title+" "+e.summary) {
			continue
		}

		resolved := e.link
		if w.Resolver != nil {
			resolved = w.Resolver.Resolve(ctx, e.link)
		}

		image := e.image
		h := &entity.Hit{Title: e.title, URL: resolved, Snippet: adapter.StripHTML(e.summary)}
		if image == nil && w.Enricher != nil {
			w.Enricher.Enrich(ctx, h)
			image = h.Image
		}
		if image == nil && w.Images != nil {
			if found := w.Images.FindImage(ctx, e.title); found != "" {
				image = &found
			}
		}

		snippet := strings.TrimSpace(adapter.StripHTML(e.summary))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}

		out = append(out, &entity.CachedArticle{
			ID:        orchestrate.HashID(orchestrate.NormalizeURL(resolved)),
			Title:     e.title,
			URL:       resolved,
			Published: e.published,
			Source:    e.feedTitle,
			Image:     image,
			GUID:      e.guid,
			Timestamp: now,
			Snippet:   snippet,
		})
	}
	return out
}
