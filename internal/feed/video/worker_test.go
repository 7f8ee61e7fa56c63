package video

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"log/slog"

	"topicscope/internal/store/sqlite"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "video.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := sqlite.NewVideoStore(db)
	if err != nil {
		t.Fatalf("NewVideoStore: %v", err)
	}
	w := New(store, nil, slog.Default())
	w.Channels = ChannelMap{} // no channels configured, RunCycle stays network-free
	return w
}

func TestRunCycleFiresOnCycleWithRowCount(t *testing.T) {
	w := newTestWorker(t)
	ctx := context.Background()

	var gotRows int
	calls := 0
	w.OnCycle = func(rows int, elapsed time.Duration) {
		calls++
		gotRows = rows
	}

	w.RunCycle(ctx)

	if calls != 1 {
		t.Fatalf("expected OnCycle to fire exactly once, got %d", calls)
	}
	if gotRows != 0 {
		t.Errorf("expected 0 rows with no channels configured, got %d", gotRows)
	}
}

func TestRunCycleNilOnCycleDoesNotPanic(t *testing.T) {
	w := newTestWorker(t)
	w.RunCycle(context.Background())
}
