package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteCache stores snapshot values as rows of a single kv table.
type SQLiteCache struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLiteCache opens (creating if needed) the database at path.
func NewSQLiteCache(path string, timeout time.Duration) (*SQLiteCache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	c := &SQLiteCache{db: db, timeout: timeout}
	if err := c.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteCache) init(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := c.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := c.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// expired removes the session and reports true when its newest row is older than the timeout.
func (c *SQLiteCache) expired(ctx context.Context, sessionID string) (bool, error) {
	if c.timeout <= 0 {
		return false, nil
	}
	var newest sql.NullInt64
	err := c.db.QueryRowContext(ctx,
		`SELECT MAX(updated_at) FROM kv WHERE session_id = ?`, sessionID).Scan(&newest)
	if err != nil {
		return false, fmt.Errorf("check session age: %w", err)
	}
	if !newest.Valid {
		return false, nil
	}
	if time.Since(time.Unix(0, newest.Int64)) <= c.timeout {
		return false, nil
	}
	return true, c.Delete(ctx, sessionID)
}

func (c *SQLiteCache) Get(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	if !validSessionID(sessionID) {
		return false, nil
	}
	expired, err := c.expired(ctx, sessionID)
	if err != nil || expired {
		return false, err
	}

	var value string
	err = c.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE session_id = ? AND key = ?`, sessionID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s for session %s: %w", key, sessionID, err)
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("decode %s for session %s: %w", key, sessionID, err)
	}
	return true, nil
}

func (c *SQLiteCache) Set(ctx context.Context, sessionID, key string, value any) error {
	return c.SetMany(ctx, sessionID, map[string]any{key: value})
}

func (c *SQLiteCache) SetMany(ctx context.Context, sessionID string, values map[string]any) error {
	if !validSessionID(sessionID) {
		return ErrInvalidSessionID
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixNano()
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s for session %s: %w", key, sessionID, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (session_id, key, value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			sessionID, key, string(raw), now); err != nil {
			return fmt.Errorf("set %s for session %s: %w", key, sessionID, err)
		}
	}
	return tx.Commit()
}

func (c *SQLiteCache) Delete(ctx context.Context, sessionID string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM kv WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

func (c *SQLiteCache) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge).UnixNano()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stale = `SELECT session_id FROM kv GROUP BY session_id HAVING MAX(updated_at) < ?`
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+stale+`)`, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stale sessions: %w", err)
	}
	if count == 0 {
		return 0, nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE session_id IN (`+stale+`)`, cutoff); err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit cleanup: %w", err)
	}
	return count, nil
}

func (c *SQLiteCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
