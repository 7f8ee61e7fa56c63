package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"topicscope/internal/domain/entity"
)

// paidPageSizeCeiling is the vendor's page-size ceiling (spec §4.3: "respects the
// vendor's page-size ceiling").
const paidPageSizeCeiling = 20

// PaidWebAdapter is the paid web search adapter (spec §4.3), backed by a subscription
// search API (Brave Search API shape: a single GET with a bearer-style subscription
// token header, a flat JSON results array). Preferred over WebAdapter whenever an API
// key is configured for the request (spec §4.8 step 3).
type PaidWebAdapter struct {
	client    *http.Client
	apiKey    string
	endpoint  string
	logger    *slog.Logger
}

// NewPaidWeb builds a PaidWebAdapter. An empty apiKey makes every Search call a no-op
// error, which the orchestrator's fan-out isolates exactly like any other adapter
// failure — callers should check for a configured key before preferring this adapter.
func NewPaidWeb(apiKey string, logger *slog.Logger) *PaidWebAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaidWebAdapter{
		client:   &http.Client{Timeout: AdapterTimeout},
		apiKey:   apiKey,
		endpoint: "https://api.search.brave.com/res/v1/web/search",
		logger:   logger,
	}
}

func (a *PaidWebAdapter) Name() string { return "paid-web" }

type paidSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
		} `json:"results"`
	} `json:"web"`
}

// Search issues a single paid-provider query. Vendor-side errors (non-2xx status,
// transport failure, malformed body) surface as an empty result plus a log line per
// spec §4.3 — the Orchestrator still isolates them into the errors list via the
// returned error, but the adapter itself never panics or blocks other adapters.
func (a *PaidWebAdapter) Search(ctx context.Context, req Request) ([]*entity.Hit, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("paid web adapter: no API key configured")
	}
	ctx, cancel := context.WithTimeout(ctx, AdapterTimeout)
	defer cancel()

	limit := clampLimit(paidPageSizeCeiling, req.Limit)
	q := url.Values{"q": {req.Query}, "count": {fmt.Sprintf("%d", limit)}}
	if req.Region != "" {
		q.Set("country", req.Region)
	}
	if req.Recency != "" {
		q.Set("freshness", req.Recency)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("paid web adapter: build request: %w", err)
	}
	httpReq.Header.Set("X-Subscription-Token", a.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		a.logger.Warn("paid web adapter request failed", slog.Any("error", err))
		return nil, fmt.Errorf("paid web adapter: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		a.logger.Warn("paid web adapter vendor error", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("paid web adapter: vendor status %d", resp.StatusCode)
	}

	var parsed paidSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		a.logger.Warn("paid web adapter decode failed", slog.Any("error", err))
		return nil, fmt.Errorf("paid web adapter: decode: %w", err)
	}

	hits := make([]*entity.Hit, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		if _, err := url.ParseRequestURI(r.URL); err != nil {
			continue
		}
		hits = append(hits, &entity.Hit{
			Title:       r.Title,
			URL:         r.URL,
			Snippet:     r.Description,
			SourceType:  entity.SourceWeb,
			Engine:      a.Name(),
			PublishedAt: r.Age,
		})
	}
	hits = filterNonLatin(hits, req.Lang)
	n := clampLimit(len(hits), req.Limit)
	return hits[:n], nil
}
