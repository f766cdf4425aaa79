// Package cas implements the JSON-file cache backend.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a flat JSON object of key to entry.
// The whole file is rewritten atomically on every Put.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[domain.CacheKey]domain.CacheEntry
}

// NewStore opens the store backed by the file at the given path. A missing file
// is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[domain.CacheKey]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, errors.Join(domain.ErrStoreOpenFailed, zerr.With(err, "path", s.path))
	}
	return s, nil
}

func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read cache file")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal cache file")
	}

	for key, entry := range s.cache {
		entry.Key = key
		s.cache[key] = entry
	}
	return nil
}

// save writes the cache to a temp file and renames it over the store file.
// Callers hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write temp cache file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to sync temp cache file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp cache file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace cache file")
	}
	return nil
}

// Get retrieves the entry for key. Returns nil, nil if not found.
func (s *Store) Get(key domain.CacheKey) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry and persists the store. When persisting fails the
// in-memory state is rolled back so Get never serves an unsaved entry.
func (s *Store) Put(entry domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.cache[entry.Key]
	s.cache[entry.Key] = entry
	if err := s.save(); err != nil {
		if existed {
			s.cache[entry.Key] = prev
		} else {
			delete(s.cache, entry.Key)
		}
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(zerr.With(err, "path", s.path), "key", entry.Key.String()))
	}
	return nil
}

// Reset removes the store file and forgets every entry.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[domain.CacheKey]domain.CacheEntry)
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(domain.ErrStoreResetFailed, zerr.With(err, "path", s.path))
	}
	return nil
}

// Close is a no-op; every Put is already on disk.
func (s *Store) Close() error {
	return nil
}
