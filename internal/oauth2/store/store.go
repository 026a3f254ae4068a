// Package store defines the transactional persistence contract for
// authorization sessions and codes. All writes for one authorization request
// happen inside a single transaction and become visible atomically on commit.
package store

import (
	"context"

	"authgate/internal/oauth2/models"
)

// Tx is the view of the store inside one transaction. Writes staged through
// a Tx are invisible to other requests until RunInTx's callback returns nil.
//
// Error Contract:
// All methods follow this pattern:
// - Return nil for successful operations
// - Return sentinel.ErrConflict (wrapped) on unique-key violations
// - Return wrapped errors with context for infrastructure failures
type Tx interface {
	// StartSession persists a new authorization session.
	StartSession(ctx context.Context, sess *models.Session) error
	// AddCode persists an authorization code bound to a session created in
	// the same transaction.
	AddCode(ctx context.Context, code *models.AuthorizationCodeRecord) error
}

// Store provides the transaction boundary. The callback's error aborts the
// transaction; a nil return commits it. Rollback must discard every staged
// write, including on panic or context cancellation.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Reader exposes the read side used by tests and the (future) token
// endpoint. Not part of the authorize hot path.
type Reader interface {
	FindSession(ctx context.Context, id models.SessionID) (*models.Session, error)
	FindCodeBySession(ctx context.Context, id models.SessionID) (*models.AuthorizationCodeRecord, error)
}
