package adapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// imageBlockSubstrings mirror the Metadata Enricher's placeholder/branding block list
// (spec §4.2) so the last-resort image search never returns a logo or favicon in place
// of genuine preview art.
var imageBlockSubstrings = []string{
	"logo", "icon", "branding", "placeholder", "pixel", "default", "favicon", "avatar",
}

// ImageSearchAdapter is the last-resort image recovery client the feed workers fall
// back to when neither RSS extraction nor OG enrichment yields an image (spec §4.9:
// "do a last-resort image search with SafeSearch=on, size=Medium, type=Photo, taking
// the first non-blocklisted URL"). Backed by the same subscription search API as
// PaidWebAdapter, on its sibling images endpoint.
type ImageSearchAdapter struct {
	client   *http.Client
	apiKey   string
	endpoint string
	logger   *slog.Logger
}

// NewImageSearch builds an ImageSearchAdapter. An empty apiKey makes every call a
// no-op error; callers should treat that as "no image recovered" rather than a fatal
// condition (spec §4.9 per-entry-process never blocks on an image).
func NewImageSearch(apiKey string, logger *slog.Logger) *ImageSearchAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageSearchAdapter{
		client:   &http.Client{Timeout: AdapterTimeout},
		apiKey:   apiKey,
		endpoint: "https://api.search.brave.com/res/v1/images/search",
		logger:   logger,
	}
}

type imageSearchResponse struct {
	Results []struct {
		Title      string `json:"title"`
		URL        string `json:"url"`
		Properties struct {
			URL string `json:"url"`
		} `json:"properties"`
	} `json:"results"`
}

// FindImage returns the first non-blocklisted photo URL for query, or "" if the
// provider is unconfigured, errors, or every candidate is blocklisted.
func (a *ImageSearchAdapter) FindImage(ctx context.Context, query string) string {
	if a.apiKey == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, AdapterTimeout)
	defer cancel()

	q := url.Values{
		"q":          {query},
		"safesearch": {"strict"},
		"size":       {"Medium"},
		"type":       {"Photo"},
		"count":      {"10"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("X-Subscription-Token", a.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug("image search request failed", slog.Any("error", err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ""
	}

	var parsed imageSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ""
	}

	for _, r := range parsed.Results {
		candidate := r.Properties.URL
		if candidate == "" {
			candidate = r.URL
		}
		if candidate == "" || isBlockedImageURL(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

func isBlockedImageURL(u string) bool {
	lower := strings.ToLower(u)
	for _, block := range imageBlockSubstrings {
		if strings.Contains(lower, block) {
			return true
		}
	}
	return false
}
