// Package memory implements the oauth2 store with maps and a coarse lock.
// Transactions stage writes in a buffer and apply them under the lock on
// commit, so concurrent readers never observe a half-created session.
package memory

import (
	"context"
	"fmt"
	"sync"

	"authgate/internal/oauth2/models"
	"authgate/internal/oauth2/store"
	"authgate/pkg/platform/sentinel"
)

// Store is the in-memory oauth2 store for tests and development.
type Store struct {
	mu       sync.RWMutex
	sessions map[models.SessionID]*models.Session
	codes    map[string]*models.AuthorizationCodeRecord
}

// New constructs an empty in-memory oauth2 store.
func New() *Store {
	return &Store{
		sessions: make(map[models.SessionID]*models.Session),
		codes:    make(map[string]*models.AuthorizationCodeRecord),
	}
}

// tx buffers writes until commit.
type tx struct {
	sessions []*models.Session
	codes    []*models.AuthorizationCodeRecord
	done     bool
}

func (t *tx) StartSession(_ context.Context, sess *models.Session) error {
	if t.done {
		return fmt.Errorf("start session: %w", sentinel.ErrTxClosed)
	}
	copied := *sess
	t.sessions = append(t.sessions, &copied)
	return nil
}

func (t *tx) AddCode(_ context.Context, code *models.AuthorizationCodeRecord) error {
	if t.done {
		return fmt.Errorf("add code: %w", sentinel.ErrTxClosed)
	}
	copied := *code
	t.codes = append(t.codes, &copied)
	return nil
}

// RunInTx runs fn against a staging buffer and applies it atomically when fn
// returns nil. A non-nil error (or panic) discards the buffer.
func (s *Store) RunInTx(ctx context.Context, fn func(tx store.Tx) error) error {
	t := &tx{}
	defer func() { t.done = true }()

	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		// Caller went away before commit; treat as rollback.
		return fmt.Errorf("commit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range t.codes {
		if _, dup := s.codes[code.Code]; dup {
			return fmt.Errorf("authorization code %q: %w", code.Code, sentinel.ErrConflict)
		}
	}
	for _, sess := range t.sessions {
		s.sessions[sess.ID] = sess
	}
	for _, code := range t.codes {
		s.codes[code.Code] = code
	}
	return nil
}

func (s *Store) FindSession(_ context.Context, id models.SessionID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	copied := *sess
	return &copied, nil
}

func (s *Store) FindCodeBySession(_ context.Context, id models.SessionID) (*models.AuthorizationCodeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, code := range s.codes {
		if code.SessionID == id {
			copied := *code
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
}

// SessionCount reports how many sessions are visible. Test helper.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
