package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"topicscope/internal/domain/entity"
)

// VideoStore persists CachedVideo rows (spec §6: videos(id, title, url,
// thumbnail, channel, views, published, timestamp, is_approved)).
type VideoStore struct {
	db *sql.DB
}

func NewVideoStore(db *sql.DB) (*VideoStore, error) {
	s := &VideoStore{db: db}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS videos (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL,
	thumbnail   TEXT,
	channel     TEXT,
	views       TEXT,
	published   TEXT,
	timestamp   REAL NOT NULL,
	is_approved INTEGER NOT NULL DEFAULT 1
)`); err != nil {
		return nil, fmt.Errorf("create videos table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_videos_timestamp ON videos(timestamp DESC)`); err != nil {
		return nil, fmt.Errorf("create videos index: %w", err)
	}
	return s, nil
}

func (s *VideoStore) Count(ctx context.Context) (int, error) {
	var n int
	err := withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	})
	return n, err
}

// Upsert writes rows, excluding id from the update set obviously and
// preserving is_approved the same way NewsStore.Upsert does.
func (s *VideoStore) Upsert(ctx context.Context, rows []*entity.CachedVideo) error {
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
INSERT INTO videos (id, title, url, thumbnail, channel, views, published, timestamp, is_approved)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT(id) DO UPDATE SET
	title     = excluded.title,
	url       = excluded.url,
	thumbnail = excluded.thumbnail,
	channel   = excluded.channel,
	views     = excluded.views,
	published = excluded.published,
	timestamp = excluded.timestamp
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.ID, r.Title, r.URL, r.Thumbnail, r.Channel, r.Views, r.Published, r.Timestamp); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// ExistsID reports whether id is already present, the first of the two
// video-dedupe passes in spec §4.10 (exact id, then fuzzy title — fuzzy
// matching happens in internal/feed/video against titles returned by Titles).
func (s *VideoStore) ExistsID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := withRetry(ctx, func() error {
		row := s.db.QueryRowContext(ctx, `SELECT 1 FROM videos WHERE id = ? LIMIT 1`, id)
		err := row.Scan(&exists)
		if err == sql.ErrNoRows {
			exists = false
			return nil
		}
		return err
	})
	return exists, err
}

// Titles returns every stored title, for the fuzzy-duplicate check.
func (s *VideoStore) Titles(ctx context.Context) ([]string, error) {
	var out []string
	err := withRetry(ctx, func() error {
		out = nil
		rows, err := s.db.QueryContext(ctx, `SELECT title FROM videos`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	return out, err
}

func (s *VideoStore) GetApproved(ctx context.Context, limit int) ([]*entity.CachedVideo, error) {
	var out []*entity.CachedVideo
	err := withRetry(ctx, func() error {
		out = nil
		rows, err := s.db.QueryContext(ctx, `
SELECT id, title, url, thumbnail, channel, views, published, timestamp, is_approved
FROM videos
WHERE is_approved = 1
ORDER BY timestamp DESC
LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v entity.CachedVideo
			if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.Thumbnail, &v.Channel, &v.Views, &v.Published, &v.Timestamp, &v.IsApproved); err != nil {
				return err
			}
			out = append(out, &v)
		}
		return rows.Err()
	})
	return out, err
}

// EnforceRetention deletes the oldest rows by timestamp once the row count
// exceeds maxRows (spec §4.10's hard cap of 200).
func (s *VideoStore) EnforceRetention(ctx context.Context, maxRows int) error {
	return withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
DELETE FROM videos WHERE id IN (
	SELECT id FROM videos ORDER BY timestamp ASC
	LIMIT MAX(0, (SELECT COUNT(*) FROM videos) - ?)
)`, maxRows)
		return err
	})
}
