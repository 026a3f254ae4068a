package session

import (
	"context"
	"sync"
)

// InMemoryStore holds user sessions in memory for tests and development.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*UserSession
}

// NewInMemoryStore constructs an empty in-memory user session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*UserSession)}
}

// Put stores a session. Test seam; the authorization flow itself never
// writes user sessions.
func (s *InMemoryStore) Put(sess *UserSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sessions[sess.ID] = &copied
}

func (s *InMemoryStore) Find(_ context.Context, id string) (*UserSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}
