package geo

import (
	"testing"

	"topicscope/internal/domain/entity"
)

func TestAssignLocal(t *testing.T) {
	h := &entity.Hit{Title: "Mumbai civic body plans new metro line", URL: "https://example.com/a"}
	if got := Assign(h); got != entity.GeoLocal {
		t.Errorf("expected Local, got %v", got)
	}
}

func TestAssignNationalByKeyword(t *testing.T) {
	h := &entity.Hit{Title: "India's economy grows 7 percent", URL: "https://example.com/b"}
	if got := Assign(h); got != entity.GeoNational {
		t.Errorf("expected National, got %v", got)
	}
}

func TestAssignNationalByTLD(t *testing.T) {
	h := &entity.Hit{Title: "Unrelated headline", URL: "https://example.in/story"}
	if got := Assign(h); got != entity.GeoNational {
		t.Errorf("expected National from TLD, got %v", got)
	}
}

func TestAssignGlobalFallback(t *testing.T) {
	h := &entity.Hit{Title: "Global markets react to rate decision", URL: "https://example.com/c"}
	if got := Assign(h); got != entity.GeoGlobal {
		t.Errorf("expected Global, got %v", got)
	}
}

func TestSortPreservesPerTierOrder(t *testing.T) {
	hits := []*entity.Hit{
		{Title: "global story one", URL: "https://example.com/1"},
		{Title: "mumbai local story", URL: "https://example.com/2"},
		{Title: "global story two", URL: "https://example.com/3"},
		{Title: "india national story", URL: "https://example.com/4"},
		{Title: "delhi local story", URL: "https://example.com/5"},
	}
	out := Sort(hits)
	wantOrder := []string{
		"mumbai local story",
		"delhi local story",
		"india national story",
		"global story one",
		"global story two",
	}
	if len(out) != len(wantOrder) {
		t.Fatalf("expected %d hits, got %d", len(wantOrder), len(out))
	}
	for i, title := range wantOrder {
		if out[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, out[i].Title)
		}
	}
}
