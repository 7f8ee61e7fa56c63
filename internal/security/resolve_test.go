package security

import "testing"

func TestResolveNonAggregatorPassthrough(t *testing.T) {
	r := NewResolver()
	u := "https://example.com/some/article"
	if got := r.Resolve(nil, u); got != u {
		t.Errorf("expected passthrough for non-aggregator host, got %q", got)
	}
}

func TestExtractFromBodyPrefersArticlePath(t *testing.T) {
	body := `<html><a href="https://gstatic.com/x">x</a>
	<a href="https://example.com/other">other</a>
	<a href="https://example.com/2024/05/01/big-story.html">story</a></html>`
	got, ok := extractFromBody(body)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "https://example.com/2024/05/01/big-story.html" {
		t.Errorf("expected article-path preference, got %q", got)
	}
}

func TestExtractFromBodySkipsTrackingHosts(t *testing.T) {
	body := `see https://doubleclick.net/ad and https://googletagmanager.com/gtm.js`
	if _, ok := extractFromBody(body); ok {
		t.Error("expected no match when only tracking hosts are present")
	}
}

func TestExtractLocationReplace(t *testing.T) {
	body := `<script>window.location.replace("https://example.com/landed")</script>`
	got, ok := extractLocationReplace(body)
	if !ok || got != "https://example.com/landed" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestLooksLikeArticlePath(t *testing.T) {
	cases := map[string]bool{
		"/2024/05/story":  true,
		"/article/123":    true,
		"/news/today":     true,
		"/page.html":      true,
		"/random/segment": false,
	}
	for path, want := range cases {
		if got := looksLikeArticlePath(path); got != want {
			t.Errorf("looksLikeArticlePath(%q) = %v, want %v", path, got, want)
		}
	}
}
