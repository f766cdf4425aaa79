package sqlite

import "go.trai.ch/zerr"

// Count returns the number of entries.
// This is exported for testing purposes only.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM docs").Scan(&n); err != nil {
		return 0, zerr.Wrap(err, "failed to count cache entries")
	}
	return n, nil
}
