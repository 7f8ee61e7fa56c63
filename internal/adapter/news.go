package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"topicscope/internal/domain/entity"
)

// regionLocale maps a spec §4.3 region code onto Google News' hl/gl/ceid locale
// parameters. "in-en" (the region the Legal Fan-Out and India-biased requests use) maps
// to English-language India results; an unrecognized or empty region queries globally.
var regionLocale = map[string]struct{ hl, gl, ceid string }{
	"in-en": {"en-IN", "IN", "IN:en"},
}

// NewsAdapter is the news search adapter (spec §4.3): Google News' public RSS search
// endpoint, parsed with gofeed. On an empty result with a region set, it retries once
// with global region before giving up.
type NewsAdapter struct {
	parser *gofeed.Parser
}

func NewNews() *NewsAdapter {
	return &NewsAdapter{parser: gofeed.NewParser()}
}

func (a *NewsAdapter) Name() string { return "news" }

func (a *NewsAdapter) Search(ctx context.Context, req Request) ([]*entity.Hit, error) {
	hits, err := a.fetch(ctx, req.Query, req.Region, req.Limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 && req.Region != "" {
		hits, err = a.fetch(ctx, req.Query, "", req.Limit)
		if err != nil {
			return nil, err
		}
	}
	hits = filterNonLatin(hits, req.Lang)
	return hits, nil
}

func (a *NewsAdapter) fetch(ctx context.Context, query, region string, limit int) ([]*entity.Hit, error) {
	feedURL := newsSearchURL(query, region)
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("news adapter: parse feed: %w", err)
	}

	hits := make([]*entity.Hit, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		hits = append(hits, &entity.Hit{
			Title:       item.Title,
			URL:         item.Link,
			Snippet:     strings.TrimSpace(item.Description),
			SourceType:  entity.SourceNews,
			Engine:      a.Name(),
			PublishedAt: item.Published,
			Image:       rssEntryImage(item),
		})
	}
	n := clampLimit(len(hits), limit)
	return hits[:n], nil
}

// newsSearchURL builds Google News' public search-RSS URL for query, localized per
// region when one is recognized (spec §4.9 search: "Builds a localized aggregator URL
// (lang -> hl/gl/ceid)").
func newsSearchURL(query, region string) string {
	v := url.Values{"q": {query}}
	if loc, ok := regionLocale[region]; ok {
		v.Set("hl", loc.hl)
		v.Set("gl", loc.gl)
		v.Set("ceid", loc.ceid)
	}
	return "https://news.google.com/rss/search?" + v.Encode()
}
