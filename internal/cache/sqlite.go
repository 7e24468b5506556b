package cache

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS cert_cache (
	key         TEXT PRIMARY KEY,
	cert_number TEXT NOT NULL,
	record      TEXT NOT NULL,
	stored_at   INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cert_cache_stored_at ON cert_cache(stored_at);
CREATE INDEX IF NOT EXISTS idx_cert_cache_expires_at ON cert_cache(expires_at);
`

// Migrate creates the cache schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "cache: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cert_number, record, stored_at, expires_at FROM cert_cache WHERE key = ?`,
		key,
	)

	var e Entry
	var recordJSON string
	err := row.Scan(&e.CertNumber, &recordJSON, &e.StoredAt, &e.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: get entry")
	}
	if err := json.Unmarshal([]byte(recordJSON), &e.Record); err != nil {
		return nil, eris.Wrap(err, "cache: unmarshal record")
	}
	return &e, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, entry Entry) error {
	recordJSON, err := json.Marshal(entry.Record)
	if err != nil {
		return eris.Wrap(err, "cache: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cert_cache (key, cert_number, record, stored_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   cert_number = excluded.cert_number,
		   record      = excluded.record,
		   stored_at   = excluded.stored_at,
		   expires_at  = excluded.expires_at`,
		key, entry.CertNumber, string(recordJSON), entry.StoredAt, entry.ExpiresAt,
	)
	return eris.Wrap(err, "cache: set entry")
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cert_cache WHERE key = ?`, key)
	return eris.Wrap(err, "cache: delete entry")
}

func (s *SQLiteStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM cert_cache ORDER BY stored_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "cache: list keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, eris.Wrap(err, "cache: scan key")
		}
		keys = append(keys, k)
	}
	return keys, eris.Wrap(rows.Err(), "cache: list keys iterate")
}
