// Package enrich implements the Metadata Enricher (spec §4.2, C2): a best-effort fetch
// of a hit's preview metadata (image, description, publish date). Enrichment never
// downgrades a hit's ranking — failures are silent and leave the hit unchanged.
package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"topicscope/internal/domain/entity"
	"topicscope/internal/security"
)

// PerItemTimeout bounds a single enrichment fetch (spec §4.2).
const PerItemTimeout = 5 * time.Second

// blockedImageSubstrings are asset-name fragments that mark a generic placeholder or
// branding image rather than genuine preview art (spec §4.2).
var blockedImageSubstrings = []string{
	"logo", "icon", "branding", "placeholder", "pixel", "default", "favicon", "avatar",
}

var blockedImageHostSubstrings = []string{
	"gstatic", "news.google.com/api",
}

// Enricher fetches OG/Twitter/JSON-LD preview metadata for a Hit's URL.
type Enricher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New builds an Enricher with a browser-profile client and the fixed per-item timeout.
func New(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		client:    &http.Client{Timeout: PerItemTimeout},
		userAgent: "Mozilla/5.0 (compatible; topicscope-enricher/1.0)",
		logger:    logger,
	}
}

// Enrich fetches h.URL and fills in Image/Snippet/PublishedAt when better values are
// found. It never returns an error to the caller: every failure is logged at debug
// level and the hit is left exactly as it was passed in, per spec §4.2's "absence must
// never downgrade a hit's ranking" contract.
func (e *Enricher) Enrich(ctx context.Context, h *entity.Hit) {
	if !security.Safe(h.URL) {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PerItemTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("enrichment fetch failed", slog.String("url", h.URL), slog.Any("error", err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		e.logger.Debug("enrichment parse failed", slog.String("url", h.URL), slog.Any("error", err))
		return
	}

	if img, ok := extractImage(doc); ok && !blockedImage(img) {
		h.Image = &img
	}
	if desc, ok := extractDescription(doc); ok && len(desc) > 10 {
		h.Snippet = desc
	}
	if published, ok := extractPublished(doc); ok {
		h.PublishedAt = published
	}
}

func extractImage(doc *goquery.Document) (string, bool) {
	if v, ok := metaContent(doc, "property", "og:image"); ok {
		return v, true
	}
	if v, ok := metaContent(doc, "name", "twitter:image"); ok {
		return v, true
	}
	return "", false
}

func extractDescription(doc *goquery.Document) (string, bool) {
	if v, ok := metaContent(doc, "property", "og:description"); ok {
		return v, true
	}
	if v, ok := metaContent(doc, "name", "description"); ok {
		return v, true
	}
	return "", false
}

func extractPublished(doc *goquery.Document) (string, bool) {
	for _, attr := range []struct{ key, val string }{
		{"property", "article:published_time"},
		{"property", "og:updated_time"},
		{"name", "pubdate"},
	} {
		if v, ok := metaContent(doc, attr.key, attr.val); ok {
			return v, true
		}
	}
	return "", false
}

func metaContent(doc *goquery.Document, attrKey, attrVal string) (string, bool) {
	sel := doc.Find("meta[" + attrKey + "='" + attrVal + "']")
	if sel.Length() == 0 {
		return "", false
	}
	v, exists := sel.First().Attr("content")
	v = strings.TrimSpace(v)
	if !exists || v == "" {
		return "", false
	}
	return v, true
}

var blockedImageRe = regexp.MustCompile(`(?i)logo|icon|branding|placeholder|pixel|default|favicon|avatar`)

func blockedImage(imgURL string) bool {
	lower := strings.ToLower(imgURL)
	for _, host := range blockedImageHostSubstrings {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return blockedImageRe.MatchString(lower)
}
