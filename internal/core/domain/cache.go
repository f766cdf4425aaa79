package domain

import "time"

// CacheKey is the fingerprint of a target's normalized body, tag, model and template.
type CacheKey string

// String returns the key as a plain string.
func (k CacheKey) String() string {
	return string(k)
}

// CacheEntry is a persisted piece of generated documentation.
type CacheEntry struct {
	Key       CacheKey  `json:"key,omitzero"`
	Text      string    `json:"text"`
	Model     string    `json:"model,omitzero"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
