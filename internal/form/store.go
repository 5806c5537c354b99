package form

import (
	"sync"

	"github.com/rgehrsitz/calcform/internal/domain"
)

// Listener is called with the new state after every applied transition
type Listener func(domain.FormState)

// Store owns the form state and is the only place it changes.
// Dispatch is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	catalog   domain.Catalog
	state     domain.FormState
	listeners []Listener
}

// NewStore creates a store holding the initial state for catalog
func NewStore(catalog domain.Catalog) *Store {
	return &Store{
		catalog: catalog,
		state:   domain.NewFormState(catalog),
	}
}

// Catalog returns the year catalog the store was built with
func (s *Store) Catalog() domain.Catalog {
	return s.catalog
}

// State returns a copy of the current state
func (s *Store) State() domain.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers l for state changes
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies action and reports whether the state changed
func (s *Store) Dispatch(action Action) bool {
	s.mu.Lock()
	next := Reduce(s.catalog, s.state, action)
	if Equal(next, s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	snapshot := next.Clone()
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot.Clone())
	}
	return true
}

// Dismiss clears the message panel
func (s *Store) Dismiss() bool {
	return s.Dispatch(SetMessage{})
}
