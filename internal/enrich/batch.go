package enrich

import (
	"context"

	"golang.org/x/sync/semaphore"

	"topicscope/internal/domain/entity"
)

// TopK is the number of leading hits enrichment runs for (spec §4.2).
const TopK = 30

// Concurrency is the bounded parallelism enrichment runs at (spec §4.2, §5).
const Concurrency = 15

// EnrichTop runs Enrich concurrently (bounded by Concurrency) over the first TopK hits
// of the slice, mutating them in place. Hits beyond TopK are left untouched. The call
// blocks until every enrichment attempt has either completed or timed out; it never
// returns an error since enrichment is best-effort by contract.
func (e *Enricher) EnrichTop(ctx context.Context, hits []*entity.Hit) {
	n := len(hits)
	if n > TopK {
		n = TopK
	}
	if n == 0 {
		return
	}

	sem := semaphore.NewWeighted(int64(Concurrency))
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		h := hits[i]
		go func() {
			defer func() { done <- struct{}{} }()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)
			e.Enrich(ctx, h)
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
}
