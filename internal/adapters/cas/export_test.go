package cas

// Len returns the number of entries.
// This is exported for testing purposes only.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
