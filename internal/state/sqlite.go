package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists pending entries so separate hook processes can see
// each other's requests.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pending (
		key         TEXT PRIMARY KEY,
		id          TEXT NOT NULL,
		tool        TEXT,
		reason      TEXT,
		matched     TEXT,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pending_created ON pending(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, p Pending) error {
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pending (key, id, tool, reason, matched, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Key, p.ID, p.Tool, p.Reason, p.Matched, p.Created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("cannot store pending entry: %w", err)
	}
	return nil
}

// Take deletes and returns the entry in one statement, so concurrent
// processes cannot both consume it.
func (s *SQLiteStore) Take(ctx context.Context, key string) (Pending, bool, error) {
	var p Pending
	var created int64
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM pending WHERE key = ? RETURNING key, id, tool, reason, matched, created_at`, key,
	).Scan(&p.Key, &p.ID, &p.Tool, &p.Reason, &p.Matched, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Pending{}, false, nil
	}
	if err != nil {
		return Pending{}, false, fmt.Errorf("cannot take pending entry: %w", err)
	}
	p.Created = time.Unix(0, created)
	return p, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending WHERE key = ?`, key); err != nil {
		return fmt.Errorf("cannot delete pending entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pending WHERE created_at < ?`, olderThan.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cannot purge pending entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("purged pending entries", "count", n)
	}
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
