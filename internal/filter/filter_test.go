package filter

import (
	"testing"

	"topicscope/internal/domain/entity"
)

func TestScoreBlacklistedDomain(t *testing.T) {
	h := &entity.Hit{Title: "golang tips", URL: "https://www.pinterest.com/pin/1"}
	if got := Score("golang tips", h); got != -1 {
		t.Errorf("expected -1 for blacklisted domain, got %d", got)
	}
}

func TestScoreCoreKeywordInTitle(t *testing.T) {
	h := &entity.Hit{Title: "Renewable energy in India surges", Snippet: "", URL: "https://example.com/a"}
	score := Score("renewable energy india", h)
	if score <= 0 {
		t.Errorf("expected positive score for title matches, got %d", score)
	}
}

func TestScoreMissPenalty(t *testing.T) {
	h := &entity.Hit{Title: "totally unrelated", Snippet: "nothing here", URL: "https://example.com/a"}
	score := Score("renewable energy", h)
	if score >= 0 {
		t.Errorf("expected negative score for misses, got %d", score)
	}
}

func TestScoreSpamPenalty(t *testing.T) {
	h := &entity.Hit{Title: "Windows 11 crack keygen download", Snippet: "free activation", URL: "https://example.com/a"}
	score := Score("windows activation", h)
	if score > -50 {
		t.Errorf("expected heavy spam penalty, got %d", score)
	}
}

func TestScoreTechTermSuppressesSpamPenalty(t *testing.T) {
	h := &entity.Hit{Title: "software patch release notes crack fix", Snippet: "api update", URL: "https://example.com/a"}
	score := Score("software patch", h)
	// tech vocabulary present ("software", "patch", "release", "api", "update") so the
	// spam penalty must not apply even though "crack" appears in the text.
	if score < 0 {
		t.Errorf("expected no spam penalty when tech terms present, got %d", score)
	}
}

func TestApplyThreshold(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "Renewable energy india", URL: "https://example.com/1"},
		{Title: "totally unrelated", URL: "https://example.com/2"},
	}
	out := Apply("renewable energy india", hits, DefaultThreshold)
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving hit, got %d", len(out))
	}
	if out[0].Title != "Renewable energy india" {
		t.Errorf("unexpected surviving hit: %+v", out[0])
	}
}
