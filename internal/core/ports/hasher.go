package ports

import "go.trai.ch/docullim/internal/core/domain"

// Hasher defines the interface for computing fingerprints.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// CacheKey computes the cache key of a target for the given model and rendered prompt.
	CacheKey(target domain.Target, model, prompt string) domain.CacheKey

	// Digest fingerprints raw file content.
	Digest(content []byte) string
}
