package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"topicscope/internal/domain/entity"
)

// NewsStore persists CachedArticle rows (spec §6: news(id, title, url,
// published, source, image, guid, timestamp, snippet, is_approved)).
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore wraps db and ensures the news table exists.
func NewNewsStore(db *sql.DB) (*NewsStore, error) {
	s := &NewsStore{db: db}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL,
	published   TEXT,
	source      TEXT,
	image       TEXT,
	guid        TEXT,
	timestamp   REAL NOT NULL,
	snippet     TEXT,
	is_approved INTEGER NOT NULL DEFAULT 1
)`); err != nil {
		return nil, fmt.Errorf("create news table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_news_timestamp ON news(timestamp DESC)`); err != nil {
		return nil, fmt.Errorf("create news index: %w", err)
	}
	return s, nil
}

// Count returns the number of rows, used to decide whether a worker cycle
// must seed synchronously before serving a read.
func (s *NewsStore) Count(ctx context.Context) (int, error) {
	var n int
	err := withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&n)
	})
	return n, err
}

// Upsert writes rows in a single transaction (INSERT ... ON CONFLICT DO
// UPDATE), batching to minimize the lock window per spec §4.9. is_approved is
// excluded from the update set so a previously-approved row is never
// silently reverted by a re-fetch.
func (s *NewsStore) Upsert(ctx context.Context, rows []*entity.CachedArticle) error {
	if len(rows) == 0 {
		return nil
	}
	return withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO news (id, title, url, published, source, image, guid, timestamp, snippet, is_approved)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT(id) DO UPDATE SET
	title     = excluded.title,
	url       = excluded.url,
	published = excluded.published,
	source    = excluded.source,
	image     = excluded.image,
	guid      = excluded.guid,
	timestamp = excluded.timestamp,
	snippet   = excluded.snippet
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.ID, r.Title, r.URL, r.Published, r.Source, r.Image, r.GUID, r.Timestamp, r.Snippet); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// InsertIgnoreOne persists a single row only if its id does not already
// exist, used by a live search to warm the cache without clobbering an
// existing approval state.
func (s *NewsStore) InsertIgnoreOne(ctx context.Context, r *entity.CachedArticle) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO news (id, title, url, published, source, image, guid, timestamp, snippet, is_approved)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
			r.ID, r.Title, r.URL, r.Published, r.Source, r.Image, r.GUID, r.Timestamp, r.Snippet)
		return err
	})
}

// GetApproved returns approved rows newest-first, capped at limit. Scoring,
// pinned-priority ordering, and geo-tiering are the caller's job (internal/feed/news).
func (s *NewsStore) GetApproved(ctx context.Context, limit int) ([]*entity.CachedArticle, error) {
	var out []*entity.CachedArticle
	err := withRetry(ctx, func() error {
		out = nil
		rows, err := s.db.QueryContext(ctx, `
SELECT id, title, url, published, source, image, guid, timestamp, snippet, is_approved
FROM news
WHERE is_approved = 1
ORDER BY timestamp DESC
LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var a entity.CachedArticle
			if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Published, &a.Source, &a.Image, &a.GUID, &a.Timestamp, &a.Snippet, &a.IsApproved); err != nil {
				return err
			}
			out = append(out, &a)
		}
		return rows.Err()
	})
	return out, err
}

// Cleanup deletes rows older than retention, except rows whose title
// contains any pinned token, which are retained until pinnedRetention
// (spec §4.9, §4.11).
func (s *NewsStore) Cleanup(ctx context.Context, retention, pinnedRetention time.Duration, pinnedTokens []string) error {
	now := float64(time.Now().Unix())
	cutoff := now - retention.Seconds()
	pinnedCutoff := now - pinnedRetention.Seconds()

	return withRetry(ctx, func() error {
		if len(pinnedTokens) == 0 {
			_, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE timestamp < ?`, cutoff)
			return err
		}

		conds := make([]string, len(pinnedTokens))
		pinnedArgs := make([]interface{}, len(pinnedTokens))
		for i, tok := range pinnedTokens {
			conds[i] = "LOWER(title) LIKE ?"
			pinnedArgs[i] = "%" + strings.ToLower(tok) + "%"
		}
		pinnedCond := strings.Join(conds, " OR ")

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		// Non-pinned rows: normal retention.
		nonPinnedArgs := append([]interface{}{cutoff}, pinnedArgs...)
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM news WHERE timestamp < ? AND NOT (%s)`, pinnedCond), nonPinnedArgs...); err != nil {
			return err
		}
		// Pinned rows: extended retention.
		pinnedDeleteArgs := append([]interface{}{pinnedCutoff}, pinnedArgs...)
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM news WHERE timestamp < ? AND (%s)`, pinnedCond), pinnedDeleteArgs...); err != nil {
			return err
		}
		return tx.Commit()
	})
}
