package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"topicscope/internal/domain/entity"
)

// VideoAdapter is the video search adapter (spec §4.3): it scrapes YouTube's public
// search-results page, which embeds its results as a `ytInitialData` JSON blob rather
// than exposing a documented search API, and extracts videoRenderer entries from it.
type VideoAdapter struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

func NewVideo(logger *slog.Logger) *VideoAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoAdapter{
		client:    &http.Client{Timeout: AdapterTimeout},
		userAgent: "Mozilla/5.0 (compatible; topicscope/1.0; +https://topicscope.invalid)",
		logger:    logger,
	}
}

func (a *VideoAdapter) Name() string { return "video" }

// VideoResult is the richer provider response the Video Feed Worker (C10) needs —
// channel, views, and the provider's own video id, none of which have a dedicated slot
// on the generic Hit. Search (the Adapter interface method) projects this down to a
// plain Hit for the orchestrator's C3 fan-out; SearchVideos returns it directly.
type VideoResult struct {
	VideoID   string
	Title     string
	Channel   string
	Views     string
	Published string
	Snippet   string
	Thumbnail string
}

var ytInitialDataRe = regexp.MustCompile(`var ytInitialData\s*=\s*(\{.*?\});`)

// SearchVideos issues a single YouTube search-results fetch and returns the raw
// provider results (spec §4.3: "Returns provider ID, thumbnail ... channel name,
// duration, view count").
func (a *VideoAdapter) SearchVideos(ctx context.Context, query string, limit int) ([]VideoResult, error) {
	ctx, cancel := context.WithTimeout(ctx, AdapterTimeout)
	defer cancel()

	searchURL := "https://www.youtube.com/results?" + url.Values{"search_query": {query}}.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("video adapter: build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", a.userAgent)
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("video adapter: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("video adapter: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("video adapter: read body: %w", err)
	}

	return parseYTInitialData(body, limit)
}

// ScrapeChannel fetches a channel's public videos tab and extracts its most recent
// uploads the same way SearchVideos extracts search results (spec §4.10: "attempt a
// direct channel scrape (limit 3)"). channel may be a handle ("@BillyGrahamEA") or a
// legacy channel slug; both resolve under youtube.com/<channel>/videos.
func (a *VideoAdapter) ScrapeChannel(ctx context.Context, channel string, limit int) ([]VideoResult, error) {
	ctx, cancel := context.WithTimeout(ctx, AdapterTimeout)
	defer cancel()

	channelURL := "https://www.youtube.com/" + strings.TrimPrefix(channel, "/") + "/videos"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, channelURL, nil)
	if err != nil {
		return nil, fmt.Errorf("video adapter: build channel request: %w", err)
	}
	httpReq.Header.Set("User-Agent", a.userAgent)
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("video adapter: channel request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("video adapter: channel unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("video adapter: read channel body: %w", err)
	}
	return parseYTInitialData(body, limit)
}

func parseYTInitialData(body []byte, limit int) ([]VideoResult, error) {
	m := ytInitialDataRe.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("video adapter: ytInitialData not found")
	}
	var blob map[string]interface{}
	if err := json.Unmarshal(m[1], &blob); err != nil {
		return nil, fmt.Errorf("video adapter: decode ytInitialData: %w", err)
	}

	renderers := findVideoRenderers(blob)
	results := make([]VideoResult, 0, len(renderers))
	for _, vr := range renderers {
		r, ok := videoRendererToResult(vr)
		if ok {
			results = append(results, r)
		}
	}
	n := clampLimit(len(results), limit)
	return results[:n], nil
}

// Search adapts SearchVideos to the generic Adapter interface, for orchestrator-side
// "type=video" requests that only need the common Hit shape.
func (a *VideoAdapter) Search(ctx context.Context, req Request) ([]*entity.Hit, error) {
	results, err := a.SearchVideos(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, err
	}
	hits := make([]*entity.Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, r.toHit(a.Name()))
	}
	return filterNonLatin(hits, req.Lang), nil
}

func (r VideoResult) toHit(engine string) *entity.Hit {
	snippet := r.Snippet
	if r.Channel != "" {
		snippet = r.Channel + " — " + snippet
	}
	thumb := r.Thumbnail
	return &entity.Hit{
		Title:       r.Title,
		URL:         "https://www.youtube.com/watch?v=" + r.VideoID,
		Snippet:     strings.TrimSpace(snippet),
		SourceType:  entity.SourceVideo,
		Engine:      engine,
		Image:       &thumb,
		PublishedAt: r.Published,
	}
}

// findVideoRenderers walks the ytInitialData tree looking for any "videoRenderer"
// object, regardless of its position — YouTube's internal JSON shape shifts between
// search-result layout experiments, so a generic recursive walk is more durable than a
// fixed path.
func findVideoRenderers(node interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	switch v := node.(type) {
	case map[string]interface{}:
		if vr, ok := v["videoRenderer"].(map[string]interface{}); ok {
			out = append(out, vr)
		}
		for _, child := range v {
			out = append(out, findVideoRenderers(child)...)
		}
	case []interface{}:
		for _, child := range v {
			out = append(out, findVideoRenderers(child)...)
		}
	}
	return out
}

func videoRendererToResult(vr map[string]interface{}) (VideoResult, bool) {
	videoID, _ := vr["videoId"].(string)
	title := runText(vr["title"])
	if videoID == "" || title == "" {
		return VideoResult{}, false
	}
	return VideoResult{
		VideoID:   videoID,
		Title:     title,
		Channel:   runText(vr["ownerText"]),
		Views:     simpleText(vr["viewCountText"]),
		Published: simpleText(vr["publishedTimeText"]),
		Snippet:   runText(vr["descriptionSnippet"]),
		Thumbnail: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID),
	}, true
}

func runText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	if s, ok := m["simpleText"].(string); ok {
		return s
	}
	runs, ok := m["runs"].([]interface{})
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, r := range runs {
		rm, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		if text, ok := rm["text"].(string); ok {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func simpleText(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m["simpleText"].(string)
	return s
}
