// Package journal keeps a local SQLite record of every EPP transaction a
// session completed: what was sent, what the registry answered, and how long
// it took.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/danmuck/eppctl/internal/protocol/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	registry TEXT NOT NULL,
	verb TEXT NOT NULL,
	extension TEXT NOT NULL DEFAULT '',
	cltrid TEXT NOT NULL,
	svtrid TEXT NOT NULL DEFAULT '',
	code INTEGER NOT NULL DEFAULT 0,
	message TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	started_at INTEGER NOT NULL,
	duration_us INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS transactions_cltrid ON transactions (cltrid);
`

// Entry is one journaled transaction.
type Entry struct {
	ID         int64
	Registry   string
	Verb       string
	Extension  string
	ClientTRID string
	ServerTRID string
	Code       int
	Message    string
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
}

// Store provides SQLite-backed journal persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the journal at path, creating the schema when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record persists one entry.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("journal is not configured")
	}

	entry.Registry = strings.TrimSpace(entry.Registry)
	entry.Verb = strings.TrimSpace(entry.Verb)
	entry.ClientTRID = strings.TrimSpace(entry.ClientTRID)
	if entry.Registry == "" {
		return fmt.Errorf("registry is required")
	}
	if entry.Verb == "" {
		return fmt.Errorf("verb is required")
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO transactions (
	registry,
	verb,
	extension,
	cltrid,
	svtrid,
	code,
	message,
	error,
	started_at,
	duration_us
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.Registry,
		entry.Verb,
		entry.Extension,
		entry.ClientTRID,
		entry.ServerTRID,
		entry.Code,
		entry.Message,
		entry.Error,
		entry.StartedAt.UTC().UnixMilli(),
		entry.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	registry,
	verb,
	extension,
	cltrid,
	svtrid,
	code,
	message,
	error,
	started_at,
	duration_us
FROM transactions
ORDER BY started_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var startedAt, durationUS int64
		if err := rows.Scan(
			&entry.ID,
			&entry.Registry,
			&entry.Verb,
			&entry.Extension,
			&entry.ClientTRID,
			&entry.ServerTRID,
			&entry.Code,
			&entry.Message,
			&entry.Error,
			&startedAt,
			&durationUS,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		entry.StartedAt = time.UnixMilli(startedAt).UTC()
		entry.Duration = time.Duration(durationUS) * time.Microsecond
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return entries, nil
}

// Observer adapts the store to a session observer for registry. Write
// failures are logged and never reach the session.
func (s *Store) Observer(registry string) session.Observer {
	return func(rec session.Record) {
		entry := Entry{
			Registry:   registry,
			Verb:       rec.Verb,
			Extension:  rec.Extension,
			ClientTRID: rec.ClientTRID,
			ServerTRID: rec.ServerTRID,
			Code:       int(rec.Code),
			Message:    rec.Message,
			StartedAt:  rec.StartedAt,
			Duration:   rec.Duration,
		}
		if rec.Err != nil {
			entry.Error = rec.Err.Error()
		}
		if err := s.Record(context.Background(), entry); err != nil {
			log.Warn().Err(err).Str("cltrid", rec.ClientTRID).Msg("journal: record failed")
		}
	}
}
