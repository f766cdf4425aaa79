// Package cachestore selects and opens the configured cache backend.
package cachestore

import (
	"errors"
	"os"

	"go.trai.ch/docullim/internal/adapters/cas"
	"go.trai.ch/docullim/internal/adapters/sqlite"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStoreFactory = (*Factory)(nil)

// Factory implements ports.CacheStoreFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open creates the cache directory and opens the backend named by cfg.CacheBackend.
func (f *Factory) Open(cfg domain.Config) (ports.CacheStore, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0o750); err != nil {
		return nil, errors.Join(domain.ErrStoreOpenFailed, zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", cfg.CacheDir))
	}

	switch cfg.CacheBackend {
	case domain.CacheBackendSQLite:
		return sqlite.NewStore(cfg.CachePath())
	case domain.CacheBackendJSON:
		return cas.NewStore(cfg.CachePath())
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownCacheBackend, ""), "backend", cfg.CacheBackend)
	}
}
