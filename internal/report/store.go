package report

import "sync"

// Store holds at most one report: the latest accepted submission.
// It starts empty, is replaced wholesale on each Set and emptied by Clear.
type Store struct {
	mu     sync.RWMutex
	latest *Report
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current report.
func (s *Store) Set(r *Report) {
	s.mu.Lock()
	s.latest = r
	s.mu.Unlock()
}

// Get returns the current report, or nil when none is held.
func (s *Store) Get() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Clear discards the current report. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	s.latest = nil
	s.mu.Unlock()
}
