package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// SetClock replaces the clock used to judge expiry.
func (s *SQLiteStore) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			expires_ts TEXT NOT NULL DEFAULT '',
			updated_ts TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
		`CREATE INDEX IF NOT EXISTS preferences_expires ON preferences(expires_ts);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Set stores value under name. A ttl of zero or less keeps it until deleted.
func (s *SQLiteStore) Set(ctx context.Context, name, value string, ttl time.Duration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	now := s.now().UTC()
	expires := ""
	if ttl > 0 {
		expires = now.Add(ttl).Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences(name, value, expires_ts, updated_ts) VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			expires_ts = excluded.expires_ts,
			updated_ts = excluded.updated_ts
	`, name, value, expires, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("set preference %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (string, bool, error) {
	var value, expires string
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_ts FROM preferences WHERE name = ?`,
		strings.TrimSpace(name),
	).Scan(&value, &expires)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", name, err)
	}
	if s.expired(expires, s.now()) {
		return "", false, nil
	}
	return value, true, nil
}

// Delete removes name if a live value exists and reports whether it did.
func (s *SQLiteStore) Delete(ctx context.Context, name string) (bool, error) {
	if _, ok, err := s.Get(ctx, name); err != nil || !ok {
		return false, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE name = ?`, strings.TrimSpace(name)); err != nil {
		return false, fmt.Errorf("delete preference %s: %w", name, err)
	}
	return true, nil
}

// Purge drops every row that has expired at now.
func (s *SQLiteStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE expires_ts != '' AND expires_ts <= ?`,
		now.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("purge preferences: %w", err)
	}
	return res.RowsAffected()
}

// SaveSettings writes several non-expiring preferences in one transaction.
func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	ts := s.now().UTC().Format(timeLayout)
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO preferences(name, value, expires_ts, updated_ts) VALUES(?, ?, '', ?)
			ON CONFLICT(name) DO UPDATE SET
				value = excluded.value,
				expires_ts = '',
				updated_ts = excluded.updated_ts
		`, k, value, ts); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// LoadSettings returns every live preference.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value, expires_ts FROM preferences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	now := s.now()
	out := map[string]string{}
	for rows.Next() {
		var k, v, expires string
		if err := rows.Scan(&k, &v, &expires); err != nil {
			return nil, err
		}
		if s.expired(expires, now) {
			continue
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) expired(expires string, now time.Time) bool {
	if expires == "" {
		return false
	}
	ts, err := time.Parse(timeLayout, expires)
	if err != nil {
		return false
	}
	return !now.Before(ts)
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

var _ Store = (*SQLiteStore)(nil)
