package sqlite

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"topicscope/internal/domain/entity"
)

const (
	maxContentionRetries = 10
	minBackoff           = 500 * time.Millisecond
	maxBackoff           = 2 * time.Second
)

// withRetry retries fn up to maxContentionRetries times with a random
// 0.5s-2.0s backoff when the embedded store reports lock contention (spec
// §7 StoreContention), wrapping the final failure in entity.ErrStoreContention.
// Any other error returns immediately, unretried.
func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxContentionRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isLockContention(lastErr) {
			return lastErr
		}
		if attempt == maxContentionRetries {
			break
		}
		backoff := minBackoff + time.Duration(rand.Int63n(int64(maxBackoff-minBackoff)))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", entity.ErrStoreContention, ctx.Err())
		}
	}
	return fmt.Errorf("%w: %v", entity.ErrStoreContention, lastErr)
}

// isLockContention matches modernc.org/sqlite's lock/busy errors by message,
// since the driver reports them as plain *sqlite.Error values whose exact
// type this package avoids depending on structurally.
func isLockContention(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "busy")
}
