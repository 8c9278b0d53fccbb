package sessions

import (
	"context"
	"sync"
	"time"
)

const memoryCleanupInterval = time.Minute

// keeps pending states in memory for single-instance deployments
type MemoryStore struct {
	states map[string]pendingState
	mu     sync.Mutex
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// returns a new memory store with a background cleanup goroutine
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		states: make(map[string]pendingState),
		now:    time.Now,
		stop:   make(chan struct{}),
	}

	go s.cleanupExpiredStates()

	return s
}

func (s *MemoryStore) Put(_ context.Context, sessionID, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[sessionID] = pendingState{
		value:     state,
		expiresAt: s.now().Add(ttl),
	}

	return nil
}

func (s *MemoryStore) Take(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, exists := s.states[sessionID]
	if !exists {
		return "", ErrStateNotFound
	}

	delete(s.states, sessionID)

	if !s.now().Before(pending.expiresAt) {
		return "", ErrStateNotFound
	}

	return pending.value, nil
}

// returns the number of pending states
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// stops the cleanup goroutine
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// runs periodically to remove abandoned logins
func (s *MemoryStore) cleanupExpiredStates() {
	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, pending := range s.states {
		if !now.Before(pending.expiresAt) {
			delete(s.states, id)
		}
	}
}
