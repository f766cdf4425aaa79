package scheduler

import (
	"maps"
	"time"

	"go.trai.ch/docullim/internal/core/domain"
)

// GetStatusMap returns a copy of the internal status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetStatusMap() map[string]domain.VertexStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.status)
}

// SetClock replaces the time source used for cache entries.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}
