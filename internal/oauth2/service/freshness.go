package service

import (
	"time"

	"authgate/internal/session"
)

// isFresh reports whether an existing end-user authentication satisfies the
// request's freshness requirement. It is true only when a session exists, is
// active, and its last interactive authentication happened at or after
// maxAuthTime.
//
// Missing, inactive and stale sessions all uniformly yield false; the caller
// does not distinguish them — the next step is always interactive
// authentication.
func isFresh(userSession *session.UserSession, maxAuthTime time.Time) bool {
	if userSession == nil || !userSession.Active {
		return false
	}
	return !userSession.LastAuthdAt.Before(maxAuthTime)
}
