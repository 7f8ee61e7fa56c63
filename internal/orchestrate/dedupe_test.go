package orchestrate

import (
	"testing"

	"topicscope/internal/domain/entity"
)

func TestDedupeByURL(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "A", URL: "https://example.com/a?utm_source=x"},
		{Title: "A duplicate", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}
	out := Dedupe(hits)
	if len(out) != 2 {
		t.Fatalf("expected 2 deduped hits, got %d", len(out))
	}
	if out[0].Title != "A" {
		t.Errorf("expected first-seen hit kept, got %q", out[0].Title)
	}
}

func TestDedupeByTitleDropsExactAndShortArchives(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "Breaking News Today", URL: "https://example.com/1"},
		{Title: "breaking news today", URL: "https://example.com/2"},
		{Title: "Archives", URL: "https://example.com/3"},
	}
	out := Dedupe(hits)
	if len(out) != 1 {
		t.Fatalf("expected 1 hit after title dedupe, got %d", len(out))
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}
	once := Dedupe(hits)
	twice := Dedupe(once)
	if len(once) != len(twice) {
		t.Errorf("expected idempotent dedupe, got %d then %d", len(once), len(twice))
	}
}
