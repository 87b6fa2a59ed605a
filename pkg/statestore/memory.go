package statestore

import (
	"context"
	"sync"
	"time"
)

// memoryStore is an in-process Store for single-instance deployments and
// tests. Expired entries are dropped lazily on access.
type memoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

// NewMemory creates an in-memory state store.
func NewMemory() Store {
	return &memoryStore{states: make(map[string]State)}
}

func (s *memoryStore) Save(_ context.Context, token string, state State, ttl time.Duration) error {
	state.ExpiresAt = time.Now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic cleanup keeps the map from growing with abandoned logins.
	now := time.Now()
	for k, v := range s.states {
		if now.After(v.ExpiresAt) {
			delete(s.states, k)
		}
	}

	s.states[token] = state
	return nil
}

func (s *memoryStore) Consume(_ context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[token]
	if !ok {
		return State{}, ErrStateNotFound
	}
	delete(s.states, token)

	if time.Now().After(state.ExpiresAt) {
		return State{}, ErrStateNotFound
	}
	return state, nil
}

var _ Store = (*memoryStore)(nil)
