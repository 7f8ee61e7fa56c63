package rank

import (
	"context"
	"testing"

	"topicscope/internal/domain/entity"
)

func TestMinMaxNormalizeFlat(t *testing.T) {
	out := MinMaxNormalize([]float64{5, 5, 5})
	for _, v := range out {
		if v != 0 {
			t.Errorf("expected flat input to normalize to 0, got %v", v)
		}
	}
}

func TestMinMaxNormalizeRange(t *testing.T) {
	out := MinMaxNormalize([]float64{0, 5, 10})
	if out[0] != 0 || out[2] != 1 || out[1] != 0.5 {
		t.Errorf("unexpected normalization: %v", out)
	}
}

func TestQuality(t *testing.T) {
	if Quality("https://mit.edu/page", "short") != 0.5 {
		t.Error("expected .edu bonus")
	}
	if Quality("https://example.org/page", "short") != 0.3 {
		t.Error("expected .org bonus")
	}
	longSnippet := "this snippet is intentionally longer than fifty characters to trigger the bonus"
	if Quality("https://example.com/page", longSnippet) != 0.2 {
		t.Error("expected long-snippet bonus")
	}
}

func TestPenaltyArchives(t *testing.T) {
	if Penalty("Archives: old news from 2010") != 1.0 {
		t.Error("expected archive penalty")
	}
	if Penalty("Fresh breaking news") != 0 {
		t.Error("expected no penalty")
	}
}

func TestRankerOrdersByHybridScore(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "totally unrelated topic", Snippet: "nothing to do with it", URL: "https://example.com/1"},
		{Title: "renewable energy in india grows", Snippet: "solar and wind power expand across india", URL: "https://example.com/2"},
		{Title: "archives: renewable energy india 2010", Snippet: "old renewable energy india article", URL: "https://example.com/3"},
	}
	r := New(nil)
	ranked := r.Rank(context.Background(), "renewable energy india", hits)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(ranked))
	}
	if ranked[0].Title != "renewable energy in india grows" {
		t.Errorf("expected most relevant non-archive hit first, got %q", ranked[0].Title)
	}
	// The archive hit should rank below the unrelated hit's absence of penalty even
	// though lexically more similar, demonstrating penalty can eject regardless of bm25.
	for _, h := range ranked {
		if h.Title == "archives: renewable energy india 2010" && h.Penalty == 0 {
			t.Error("expected archive penalty to be applied")
		}
	}
}

func TestRankEmpty(t *testing.T) {
	r := New(nil)
	out := r.Rank(context.Background(), "q", nil)
	if len(out) != 0 {
		t.Error("expected empty result for empty input")
	}
}
