package trend

import (
	"testing"
	"time"
)

func TestExpandQueriesCoversThreeYearsTimesFourTemplates(t *testing.T) {
	now := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	out := expandQueries("renewable energy", now)
	if len(out) != 12 {
		t.Fatalf("expected 12 base queries (4 templates x 3 years), got %d", len(out))
	}
	for _, year := range []string{"2026", "2025", "2024"} {
		found := false
		for _, q := range out {
			if containsYear(q, year) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected at least one query for year %s", year)
		}
	}
}

func TestExpandQueriesAddsRegistryQueriesForIndiaTopic(t *testing.T) {
	now := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	out := expandQueries("India census growth", now)
	if len(out) != 15 {
		t.Fatalf("expected 12 base + 3 registry queries, got %d", len(out))
	}
}

func TestIsIndiaOrChristianTopic(t *testing.T) {
	cases := map[string]bool{
		"India census":        true,
		"Christianity growth": true,
		"renewable energy":    false,
	}
	for topic, want := range cases {
		if got := isIndiaOrChristianTopic(topic); got != want {
			t.Errorf("isIndiaOrChristianTopic(%q) = %v, want %v", topic, got, want)
		}
	}
}

func containsYear(q, year string) bool {
	for i := 0; i+len(year) <= len(q); i++ {
		if q[i:i+len(year)] == year {
			return true
		}
	}
	return false
}
