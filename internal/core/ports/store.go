package ports

import "go.trai.ch/docullim/internal/core/domain"

// CacheStore persists generated documentation keyed by target fingerprint.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Get retrieves the entry for a key.
	// Returns nil, nil if not found.
	Get(key domain.CacheKey) (*domain.CacheEntry, error)

	// Put stores an entry, replacing any previous entry with the same key.
	Put(entry domain.CacheEntry) error

	// Reset removes every entry.
	Reset() error

	// Close releases the underlying resources.
	Close() error
}

// CacheStoreFactory opens the cache store selected by the configuration.
type CacheStoreFactory interface {
	// Open opens or creates the store under the configured cache directory.
	Open(cfg domain.Config) (CacheStore, error)
}
