package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"topicscope/internal/domain/entity"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestNewsUpsertAndGetApproved(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	store, err := NewNewsStore(db)
	if err != nil {
		t.Fatalf("NewNewsStore: %v", err)
	}
	ctx := context.Background()

	now := float64(time.Now().Unix())
	rows := []*entity.CachedArticle{
		{ID: "a1", Title: "Old story", URL: "https://example.com/1", Timestamp: now - 100, Snippet: "s1"},
		{ID: "a2", Title: "New story", URL: "https://example.com/2", Timestamp: now, Snippet: "s2"},
	}
	if err := store.Upsert(ctx, rows); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.GetApproved(ctx, 10)
	if err != nil {
		t.Fatalf("GetApproved: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != "a2" {
		t.Errorf("expected newest-first, got %s first", got[0].ID)
	}
}

func TestNewsCleanupRetainsPinned(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	store, err := NewNewsStore(db)
	if err != nil {
		t.Fatalf("NewNewsStore: %v", err)
	}
	ctx := context.Background()

	old := float64(time.Now().Add(-4 * 24 * time.Hour).Unix())
	rows := []*entity.CachedArticle{
		{ID: "p1", Title: "Vatican announces new initiative", URL: "https://example.com/p1", Timestamp: old, Snippet: "s"},
		{ID: "n1", Title: "Regular old news", URL: "https://example.com/n1", Timestamp: old, Snippet: "s"},
	}
	if err := store.Upsert(ctx, rows); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := store.Cleanup(ctx, 3*24*time.Hour, 7*24*time.Hour, []string{"Vatican"}); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	got, err := store.GetApproved(ctx, 10)
	if err != nil {
		t.Fatalf("GetApproved: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("expected only pinned row p1 to survive, got %+v", got)
	}
}

func TestVideoRetentionCap(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	store, err := NewVideoStore(db)
	if err != nil {
		t.Fatalf("NewVideoStore: %v", err)
	}
	ctx := context.Background()

	var rows []*entity.CachedVideo
	base := float64(time.Now().Unix())
	for i := 0; i < 5; i++ {
		rows = append(rows, &entity.CachedVideo{
			ID: string(rune('a' + i)), Title: "video", URL: "https://example.com/v", Timestamp: base + float64(i),
		})
	}
	if err := store.Upsert(ctx, rows); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.EnforceRetention(ctx, 3); err != nil {
		t.Fatalf("EnforceRetention: %v", err)
	}
	got, err := store.GetApproved(ctx, 100)
	if err != nil {
		t.Fatalf("GetApproved: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 rows after retention cap, got %d", len(got))
	}
}
