package adapter

import (
	"testing"

	"topicscope/internal/domain/entity"
)

func TestDetectLanguage_ShortTextReturnsEmpty(t *testing.T) {
	if got := DetectLanguage("short"); got != "" {
		t.Errorf("DetectLanguage(short) = %q, want empty", got)
	}
}

func TestDetectLanguage_English(t *testing.T) {
	got := DetectLanguage("The quick brown fox jumps over the lazy dog near the riverbank")
	if got != "en" {
		t.Errorf("DetectLanguage(english) = %q, want \"en\"", got)
	}
}

func TestFilterByLanguage_EmptyLangIsNoOp(t *testing.T) {
	hits := []*entity.Hit{{Title: "The quick brown fox jumps over the lazy dog"}}
	out := FilterByLanguage(hits, "")
	if len(out) != 1 {
		t.Fatalf("expected unfiltered passthrough, got %d hits", len(out))
	}
}

func TestFilterByLanguage_KeepsMatchingLanguage(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "The quick brown fox jumps over the lazy dog near the river"},
		{Title: "El veloz murcielago hindu comia feliz cardillo y kiwi la cigüeña"},
	}
	out := FilterByLanguage(hits, "en")
	if len(out) != 1 {
		t.Fatalf("expected 1 english hit, got %d", len(out))
	}
	if out[0].Title != hits[0].Title {
		t.Errorf("expected the english hit to survive, got %q", out[0].Title)
	}
}
