// Package sqlite implements the SQLite cache backend.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // database/sql driver
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

const createDocsTable = `
CREATE TABLE IF NOT EXISTS docs (
	hash TEXT PRIMARY KEY,
	doc TEXT NOT NULL,
	model TEXT,
	created_at TIMESTAMP
)`

// Store implements ports.CacheStore on a single SQLite table. The table layout
// stays readable by caches created before model and created_at existed.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewStore opens or creates the database at path.
func NewStore(path string) (*Store, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Join(domain.ErrStoreOpenFailed, zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", path))
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, errors.Join(domain.ErrStoreOpenFailed, zerr.With(err, "path", path))
	}
	// One connection serializes writers and avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, errors.Join(domain.ErrStoreOpenFailed, zerr.With(err, "path", path))
	}
	return s, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(createDocsTable); err != nil {
		return zerr.Wrap(err, "failed to create docs table")
	}

	columns, err := s.columns()
	if err != nil {
		return err
	}
	for _, col := range []struct{ name, decl string }{
		{"model", "TEXT"},
		{"created_at", "TIMESTAMP"},
	} {
		if columns[col.name] {
			continue
		}
		if _, err := s.db.Exec("ALTER TABLE docs ADD COLUMN " + col.name + " " + col.decl); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to migrate docs table"), "column", col.name)
		}
	}
	return nil
}

func (s *Store) columns() (map[string]bool, error) {
	rows, err := s.db.Query("PRAGMA table_info(docs)")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to inspect docs table")
	}
	defer rows.Close() //nolint:errcheck // read-only query

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, zerr.Wrap(err, "failed to inspect docs table")
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// Get retrieves the entry for key. Returns nil, nil if not found.
func (s *Store) Get(key domain.CacheKey) (*domain.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		text      string
		model     sql.NullString
		createdAt sql.NullTime
	)
	err := s.db.QueryRow("SELECT doc, model, created_at FROM docs WHERE hash = ?", key.String()).
		Scan(&text, &model, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(domain.ErrStoreReadFailed, zerr.With(err, "key", key.String()))
	}

	return &domain.CacheEntry{
		Key:       key,
		Text:      text,
		Model:     model.String,
		CreatedAt: createdAt.Time,
	}, nil
}

// Put stores the entry, replacing any previous entry with the same key.
func (s *Store) Put(entry domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		"REPLACE INTO docs (hash, doc, model, created_at) VALUES (?, ?, ?, ?)",
		entry.Key.String(), entry.Text, entry.Model, createdAt,
	)
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "key", entry.Key.String()))
	}
	return nil
}

// Reset deletes every entry.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM docs"); err != nil {
		return errors.Join(domain.ErrStoreResetFailed, zerr.With(err, "path", s.path))
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
