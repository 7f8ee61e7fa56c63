package news

import "testing"

func TestPickFallsBackToDefaultBundleWhenNoneActive(t *testing.T) {
	m := DefaultFeedMap
	got := m.Pick(nil)
	for _, want := range m.DefaultBundle {
		if !contains(got, want) {
			t.Errorf("expected default bundle feed %q in result", want)
		}
	}
}

func TestPickAlwaysUnionsPriorityFeeds(t *testing.T) {
	m := DefaultFeedMap
	got := m.Pick([]string{"Technology"})
	for _, want := range m.Priority {
		if !contains(got, want) {
			t.Errorf("expected priority feed %q always included, got %v", want, got)
		}
	}
}

func TestPickDedupesAcrossTopics(t *testing.T) {
	m := FeedMap{
		Topics: map[string][]string{
			"A": {"https://feed.example.com/x"},
			"B": {"https://feed.example.com/x"},
		},
	}
	got := m.Pick([]string{"A", "B"})
	count := 0
	for _, u := range got {
		if u == "https://feed.example.com/x" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected feed URL deduped across topics, got %d occurrences", count)
	}
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
