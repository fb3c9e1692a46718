package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS summary_cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summary_cache_created_at ON summary_cache(created_at);
`

// SQLite is a Store backed by a SQLite database file, for deployments
// that want cached summaries to survive restarts. The driver is pure
// Go, so the cache needs no cgo even when the main storage layer uses it.
type SQLite struct {
	db        *sql.DB
	freshness time.Duration
	now       func() time.Time
}

// SQLiteOption configures a SQLite store.
type SQLiteOption func(*SQLite)

// WithSQLiteClock overrides the time source used for entry ages.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLite) { s.now = now }
}

// NewSQLite opens (creating if needed) the cache database at path.
func NewSQLite(path string, freshness time.Duration, opts ...SQLiteOption) (*SQLite, error) {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	s := &SQLite{db: db, freshness: freshness, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value, created_at FROM summary_cache WHERE key = ?`, key,
	).Scan(&value, &createdAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache entry: %w", err)
	}
	if s.now().Sub(time.Unix(0, createdAt)) >= s.freshness {
		return "", false, nil
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO summary_cache (key, value, created_at) VALUES (?, ?, ?)`,
		key, value, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Purge implements Store.
func (s *SQLite) Purge(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.freshness).UnixNano()
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM summary_cache WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge cache entries: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged entries: %w", err)
	}
	return int(removed), nil
}

// Len implements Store.
func (s *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM summary_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
