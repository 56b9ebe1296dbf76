package session

import (
	"context"
	"sync"

	"github.com/hupe1980/agendamesh/core"
)

// InMemoryStore is a volatile Store implementation keeping schedules in a
// process local map. It is safe for concurrent access and best suited for
// tests or single-process demo servers. Schedules are cloned on both paths to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Schedule
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Schedule)}
}

// Get returns a clone of the stored schedule or ErrNotFound.
func (s *InMemoryStore) Get(_ context.Context, sessionID string) (*core.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sched, ok := s.sessions[sessionID]; ok {
		return sched.Clone(), nil
	}
	return nil, ErrNotFound
}

// Save stores a clone of the provided schedule snapshot.
func (s *InMemoryStore) Save(_ context.Context, sessionID string, schedule *core.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = schedule.Clone()
	return nil
}

// Len reports how many sessions are currently stored.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*InMemoryStore)(nil)
