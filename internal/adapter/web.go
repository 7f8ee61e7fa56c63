package adapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"topicscope/internal/domain/entity"
)

// AdapterTimeout bounds a single adapter call (spec §5: "adapter <= 30s").
const AdapterTimeout = 30 * time.Second

// WebAdapter is the primary (free, no API key) web search adapter (spec §4.3). It
// queries DuckDuckGo's HTML-only results endpoint, which requires no API key and no
// JavaScript execution, matching the "no paid key" default path of spec §4.8 step 3.
type WebAdapter struct {
	client    *http.Client
	userAgent string
	endpoint  string
	logger    *slog.Logger
}

// NewWeb builds a WebAdapter against DuckDuckGo's HTML endpoint.
func NewWeb(logger *slog.Logger) *WebAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebAdapter{
		client:    &http.Client{Timeout: AdapterTimeout},
		userAgent: "Mozilla/5.0 (compatible; topicscope/1.0; +https://topicscope.invalid)",
		endpoint:  "https://html.duckduckgo.com/html/",
		logger:    logger,
	}
}

func (a *WebAdapter) Name() string { return "web" }

// Search issues a single HTML-results query. Region is passed through as DuckDuckGo's
// "kl" locale parameter (e.g. "in-en"); an empty region queries globally.
func (a *WebAdapter) Search(ctx context.Context, req Request) ([]*entity.Hit, error) {
	ctx, cancel := context.WithTimeout(ctx, AdapterTimeout)
	defer cancel()

	form := url.Values{"q": {req.Query}}
	if req.Region != "" {
		form.Set("kl", req.Region)
	}
	if df := recencyToDF(req.Recency); df != "" {
		form.Set("df", df)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("web adapter: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("web adapter: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("web adapter: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("web adapter: parse results: %w", err)
	}

	var hits []*entity.Hit
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		href = unwrapDDGRedirect(href)
		if title == "" || href == "" {
			return
		}
		if _, err := url.ParseRequestURI(href); err != nil {
			return
		}
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		hits = append(hits, &entity.Hit{
			Title:      title,
			URL:        href,
			Snippet:    snippet,
			SourceType: entity.SourceWeb,
			Engine:     a.Name(),
		})
	})

	hits = filterNonLatin(hits, req.Lang)
	n := clampLimit(len(hits), req.Limit)
	return hits[:n], nil
}

// unwrapDDGRedirect extracts the real target from DuckDuckGo's "/l/?uddg=..." redirect
// wrapper links, leaving already-absolute URLs untouched.
func unwrapDDGRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return href
}

// recencyToDF maps the spec's d/w/m/y recency filter onto DuckDuckGo's "df" parameter.
func recencyToDF(recency string) string {
	switch recency {
	case "d":
		return "d"
	case "w":
		return "w"
	case "m":
		return "m"
	case "y":
		return "y"
	default:
		return ""
	}
}
