// ABOUTME: SQLite key-value credential backend using the pure-Go modernc driver.
// ABOUTME: Stores the whole credential document as one JSON value under a fixed key.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/2389-research/blogpub/internal/logutil"
	"github.com/2389-research/blogpub/internal/models"
)

// ConfigKey is the key under which the credential document is stored.
const ConfigKey = "blogpub-config"

// SQLiteStore keeps credentials in a key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("credentials path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// queryExecer is satisfied by *sql.DB and *sql.Conn.
type queryExecer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Load reads the credential map.
func (s *SQLiteStore) Load(ctx context.Context) models.CredentialMap {
	return readDocument(ctx, s.db)
}

// Save replaces the stored document.
func (s *SQLiteStore) Save(ctx context.Context, creds models.CredentialMap) error {
	return writeDocument(ctx, s.db, creds)
}

// Update reads, modifies and writes the document inside an immediate
// transaction, which takes the database write lock up front.
func (s *SQLiteStore) Update(ctx context.Context, fn func(creds models.CredentialMap)) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	creds := readDocument(ctx, conn)
	fn(creds)
	if err := writeDocument(ctx, conn, creds); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func readDocument(ctx context.Context, q queryExecer) models.CredentialMap {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", ConfigKey).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logutil.Warnf("failed to read credentials: %v", err)
		}
		return models.CredentialMap{}
	}

	var doc configDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logutil.Warnf("ignoring corrupt credentials value: %v", err)
		return models.CredentialMap{}
	}
	if doc.Tokens == nil {
		return models.CredentialMap{}
	}
	return doc.Tokens
}

func writeDocument(ctx context.Context, q queryExecer, creds models.CredentialMap) error {
	data, err := json.MarshalIndent(configDocument{Tokens: creds.Clone()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, ConfigKey, string(data))
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
