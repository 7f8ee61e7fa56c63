package security

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ResolveBudget is the total time allotted to Resolve before it gives up and returns
// the original URL (spec §4.1: "Total budget <= 10s").
const ResolveBudget = 10 * time.Second

// aggregatorHosts are hosts whose links must be chased to their landing page before
// use; userContentMirrors are hosts a chase must never land on and treat as still
// aggregator-owned.
var aggregatorHosts = map[string]bool{
	"news.google.com": true,
}

var userContentMirrors = map[string]bool{
	"www.google.com": true,
}

// trackingHosts are never accepted as a resolved landing URL even when they are not
// the aggregator itself (ad/consent/tag-manager noise, spec §4.1 step 3).
var trackingHostSubstrings = []string{
	"gstatic",
	"googleusercontent",
	"doubleclick",
	"googletagmanager",
	"googlesyndication",
}

var locationReplaceRe = regexp.MustCompile(`window\.location\.replace\(["']([^"']+)["']\)`)
var absoluteURLRe = regexp.MustCompile(`https?://[^\s"'<>]+`)

// Resolver chases aggregator URLs to their publisher landing page using a
// browser-profile client. It is stateless and safe for concurrent use.
type Resolver struct {
	Client *http.Client
	// UserAgent is sent on every request issued by Resolve.
	UserAgent string
}

// NewResolver builds a Resolver with the browser-profile client spec §4.1 requires:
// a bounded total deadline, redirects followed automatically up to a sane cap, and
// Connection: close so aggregator edge servers don't keep a pooled connection alive
// across unrelated resolutions.
func NewResolver() *Resolver {
	return &Resolver{
		Client: &http.Client{
			Timeout: ResolveBudget,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	}
}

// Resolve returns the publisher URL behind a known aggregator link, or the original
// URL unchanged if it is not a recognized aggregator host, or if every resolution
// strategy fails (spec §4.1). Non-aggregator URLs are returned immediately without
// any network call.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !aggregatorHosts[strings.ToLower(u.Hostname())] {
		return rawURL
	}

	ctx, cancel := context.WithTimeout(ctx, ResolveBudget)
	defer cancel()

	if landing, ok := r.tryHead(ctx, rawURL); ok {
		return landing
	}
	body, landing, ok := r.tryGet(ctx, rawURL)
	if ok {
		return landing
	}
	if body != "" {
		if found, ok := extractFromBody(body); ok {
			return found
		}
		if found, ok := extractLocationReplace(body); ok {
			return found
		}
	}
	return rawURL
}

func (r *Resolver) tryHead(ctx context.Context, rawURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", false
	}
	r.applyHeaders(req, rawURL)
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	return acceptLanding(resp)
}

func (r *Resolver) tryGet(ctx context.Context, rawURL string) (body string, landing string, ok bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", false
	}
	r.applyHeaders(req, rawURL)
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", "", false
	}
	defer resp.Body.Close()

	landing, ok = acceptLanding(resp)
	limited := io.LimitReader(resp.Body, 1<<20) // cap body read at 1MiB
	raw, _ := io.ReadAll(limited)
	return string(raw), landing, ok
}

func (r *Resolver) applyHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", r.UserAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Connection", "close")
}

// acceptLanding implements the strategy-order acceptance test: the final response URL
// is accepted unless it is still the aggregator host or its user-content mirror.
func acceptLanding(resp *http.Response) (string, bool) {
	if resp.Request == nil || resp.Request.URL == nil {
		return "", false
	}
	host := strings.ToLower(resp.Request.URL.Hostname())
	if aggregatorHosts[host] || userContentMirrors[host] {
		return "", false
	}
	return resp.Request.URL.String(), true
}

// extractFromBody parses the landing body for an absolute URL that is neither the
// aggregator nor common tracking hosts, preferring URLs whose path carries
// publication signals (spec §4.1 step 3).
func extractFromBody(body string) (string, bool) {
	candidates := absoluteURLRe.FindAllString(body, -1)
	var fallback string
	for _, c := range candidates {
		c = strings.TrimRight(c, `)."',`)
		u, err := url.Parse(c)
		if err != nil {
			continue
		}
		host := strings.ToLower(u.Hostname())
		if aggregatorHosts[host] || userContentMirrors[host] {
			continue
		}
		if isTrackingHost(host) {
			continue
		}
		if fallback == "" {
			fallback = c
		}
		if looksLikeArticlePath(u.Path) {
			return c, true
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

func extractLocationReplace(body string) (string, bool) {
	m := locationReplaceRe.FindStringSubmatch(body)
	if len(m) == 2 {
		return m[1], true
	}
	return "", false
}

func isTrackingHost(host string) bool {
	for _, sub := range trackingHostSubstrings {
		if strings.Contains(host, sub) {
			return true
		}
	}
	return false
}

func looksLikeArticlePath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "/20") ||
		strings.Contains(lower, ".html") ||
		strings.Contains(lower, "article") ||
		strings.Contains(lower, "news")
}
