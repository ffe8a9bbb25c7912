package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session state keyed by session ID. Sessions are fully
// isolated from each other; no cross-session reads happen anywhere.
type Store interface {
	// Load returns the state for id, or nil when the session is unknown
	// (not an error).
	Load(ctx context.Context, id string) (*State, error)

	// Save persists the state wholesale under its ID.
	Save(ctx context.Context, state *State) error

	// Delete ends a session and drops its state.
	Delete(ctx context.Context, id string) error

	Close() error
}

// MemoryStore keeps sessions in a process-local map. Interactions for one
// session never run concurrently, so the lock only guards the map itself.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*State),
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, exists := s.sessions[id]
	if !exists {
		return nil, nil
	}
	return state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.UpdatedAt = now

	s.sessions[state.ID] = state
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
