package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one pending or completed authorization transaction.
type SessionID = uuid.UUID

// Session is the per-request authorization transaction record. It is created
// once inside the request's storage transaction and never mutated afterwards;
// attaching a code goes through the store's AddCode operation.
type Session struct {
	ID SessionID
	// UserSessionID links the end-user session that initiated the request,
	// when the caller presented one. Empty means anonymous.
	UserSessionID string
	ClientID      string
	// Scope is the canonical space-joined scope string.
	Scope        string
	State        string
	Nonce        string
	MaxAge       *time.Duration
	ResponseType ResponseTypeSet
	ResponseMode ResponseMode
	CreatedAt    time.Time
}

// maxAuthTimeFloor is the sentinel deadline used when the request carries no
// max_age: any prior authentication, however old, qualifies.
var maxAuthTimeFloor = time.Unix(0, 0).UTC()

// MaxAuthTime derives the earliest acceptable last-authentication time for
// this session. A prior authentication at or after this instant satisfies the
// request without interactive login.
func (s *Session) MaxAuthTime() time.Time {
	if s.MaxAge == nil {
		return maxAuthTimeFloor
	}
	return s.CreatedAt.Add(-*s.MaxAge)
}

// AuthorizationCodeRecord is an issued authorization code bound to a session
// and, optionally, a PKCE challenge. Immutable once created; consumption
// belongs to the token endpoint.
type AuthorizationCodeRecord struct {
	Code                string
	SessionID           SessionID
	CodeChallenge       string
	CodeChallengeMethod string
	CreatedAt           time.Time
}
