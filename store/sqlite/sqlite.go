/*
Package sqlite provides the SQLite-backed DocumentStore.

PURPOSE:
  Durable key→document persistence for the ledger collections. Each
  collection is one JSON document in a single `documents` table; the store
  knows nothing about entries or settings beyond their bytes.

KEY TABLE:
  documents(key PRIMARY KEY, doc, updated_at)

ATOMICITY:
  Put is a single upsert. PutAll wraps its upserts in one SQL transaction
  so the backup restore path replaces every collection or none of them.

CONCURRENCY:
  The ledger is single-user, but the store still guards each call with a
  mutex and opens SQLite in WAL mode, so the read-modify-write cycles
  above it stay one logical step if concurrent callers ever appear.

USAGE:
  store, err := sqlite.New("./khata.db")   // ":memory:" for tests
  if err != nil { ... }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/daudsoft/khata/ledger"
)

// Store implements ledger.DocumentStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the document under key and whether the key has ever been
// written.
func (s *Store) Get(ctx context.Context, key ledger.Collection) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM documents WHERE key = ?", string(key),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %q: %w", key, err)
	}
	return []byte(doc), true, nil
}

// Put replaces the document under key.
func (s *Store) Put(ctx context.Context, key ledger.Collection, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putTx(ctx, s.db, key, doc)
}

// PutAll replaces several documents inside one SQL transaction.
func (s *Store) PutAll(ctx context.Context, docs map[ledger.Collection][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, doc := range docs {
		if err := s.putTx(ctx, tx, key, doc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) putTx(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, key ledger.Collection, doc []byte) error {
	query := `
		INSERT INTO documents (key, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query,
		string(key),
		string(doc),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}
