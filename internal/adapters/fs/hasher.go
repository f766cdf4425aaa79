package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes cache keys and content fingerprints with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// CacheKey hashes the normalized body, tag, model and prompt, NUL-separated.
// Source location plays no part, so identical definitions share a key.
func (h *Hasher) CacheKey(target domain.Target, model, prompt string) domain.CacheKey {
	hasher := xxhash.New()

	for _, part := range []string{target.Body, target.Tag, model, prompt} {
		_, _ = hasher.WriteString(part)
		_, _ = hasher.Write([]byte{0})
	}

	return domain.CacheKey(fmt.Sprintf("%016x", hasher.Sum64()))
}

// Digest fingerprints raw file content.
func (h *Hasher) Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
