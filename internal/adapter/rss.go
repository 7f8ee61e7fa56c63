package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"topicscope/internal/domain/entity"
)

// RSSAdapter parses an arbitrary feed URL and yields one hit per entry (spec §4.3 "RSS
// adapter"). Unlike the other adapters, req.Query here is the feed URL itself — the
// News/Video Feed Workers (C9/C10) are RSSAdapter's primary callers, fetching a fixed
// per-topic feed list rather than issuing a text query.
type RSSAdapter struct {
	parser *gofeed.Parser
}

func NewRSS() *RSSAdapter {
	return &RSSAdapter{parser: gofeed.NewParser()}
}

func (a *RSSAdapter) Name() string { return "rss" }

// Search treats req.Query as a feed URL, per the type doc above.
func (a *RSSAdapter) Search(ctx context.Context, req Request) ([]*entity.Hit, error) {
	return a.FetchFeed(ctx, req.Query, req.Limit)
}

// FetchRaw parses feedURL and returns the gofeed feed unchanged, for callers (the
// News Feed Worker, C9) that need fields FetchFeed's Hit projection drops, such as a
// per-entry GUID.
func (a *RSSAdapter) FetchRaw(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss adapter: parse %s: %w", feedURL, err)
	}
	return feed, nil
}

// EntryImage is the exported form of rssEntryImage for callers outside this package
// that walk gofeed items directly (the News Feed Worker, C9).
func EntryImage(item *gofeed.Item) *string { return rssEntryImage(item) }

// StripHTML is the exported form of stripHTML for callers outside this package.
func StripHTML(s string) string { return stripHTML(s) }

// FetchFeed parses feedURL and returns one hit per entry, image-recovered per spec
// §4.3's RSS extraction order.
func (a *RSSAdapter) FetchFeed(ctx context.Context, feedURL string, limit int) ([]*entity.Hit, error) {
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss adapter: parse %s: %w", feedURL, err)
	}

	hits := make([]*entity.Hit, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		hits = append(hits, &entity.Hit{
			Title:       item.Title,
			URL:         item.Link,
			Snippet:     strings.TrimSpace(stripHTML(item.Description)),
			SourceType:  entity.SourceNews,
			Engine:      feedTitleOrHost(feed, feedURL),
			PublishedAt: item.Published,
			Image:       rssEntryImage(item),
		})
	}
	n := clampLimit(len(hits), limit)
	return hits[:n], nil
}

func feedTitleOrHost(feed *gofeed.Feed, fallback string) string {
	if feed != nil && feed.Title != "" {
		return feed.Title
	}
	return fallback
}

var imgSrcRe = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// rssEntryImage walks a gofeed item's media extensions in the order spec §4.3
// requires: media:content, media:thumbnail, the first image/* enclosure, then a
// best-effort <img src=> regex over the summary. Returns nil when none are found —
// callers fall through to OG enrichment or image search (spec §4.9).
func rssEntryImage(item *gofeed.Item) *string {
	if item.Extensions != nil {
		if media, ok := item.Extensions["media"]; ok {
			if url, ok := firstMediaURL(media, "content"); ok {
				return &url
			}
			if url, ok := firstMediaURL(media, "thumbnail"); ok {
				return &url
			}
		}
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			url := enc.URL
			return &url
		}
	}
	if m := imgSrcRe.FindStringSubmatch(item.Description); len(m) == 2 {
		url := m[1]
		return &url
	}
	return nil
}

func firstMediaURL(media map[string][]gofeed.Extension, key string) (string, bool) {
	exts, ok := media[key]
	if !ok {
		return "", false
	}
	for _, ext := range exts {
		if url, ok := ext.Attrs["url"]; ok && url != "" {
			return url, true
		}
	}
	return "", false
}

func stripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}
