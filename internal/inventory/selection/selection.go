package selection

import "sync"

// Set tracks the operator's transient product selection. It is process
// local and never persisted; a restart clears it.
type Set struct {
	mu  sync.RWMutex
	ids map[uint]struct{}
}

// NewSet creates an empty selection set
func NewSet() *Set {
	return &Set{ids: make(map[uint]struct{})}
}

// Select adds the given product ids to the selection
func (s *Set) Select(ids ...uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Deselect removes the given product ids from the selection
func (s *Set) Deselect(ids ...uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// SelectAll replaces the selection with the given (filtered) id set
func (s *Set) SelectAll(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[uint]struct{})
}

// Contains reports whether a product id is selected
func (s *Set) Contains(id uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in unspecified order
func (s *Set) IDs() []uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uint, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Len returns the selection size
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
