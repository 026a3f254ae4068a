// Package session exposes read-only access to end-user authentication
// sessions. The authorization core never creates or mutates these; it only
// checks whether an existing authentication is fresh enough.
package session

import (
	"context"
	"time"
)

// UserSession is an end-user authentication session as seen by the
// authorization flow.
type UserSession struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
	// LastAuthdAt is when the user last completed interactive authentication,
	// not when the session was last used.
	LastAuthdAt time.Time `json:"last_authd_at"`
}

// Store looks up user sessions by ID.
//
// Error Contract:
// - Return (nil, nil) when the session does not exist; absence is a normal
//   outcome for the authorization flow, not an error
// - Return wrapped errors for infrastructure failures
type Store interface {
	Find(ctx context.Context, id string) (*UserSession, error)
}
