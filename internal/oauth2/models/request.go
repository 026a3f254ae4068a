package models

import (
	"strings"
	"time"

	dErrors "authgate/pkg/domain-errors"
	pstrings "authgate/pkg/platform/strings"
)

// AuthorizationRequest is the inbound, untrusted authorization request after
// query-string decoding. Field contents are validated here; redirect URI
// resolution against the client registration happens in the service.
type AuthorizationRequest struct {
	ClientID     string
	RedirectURI  string
	ResponseType ResponseTypeSet
	ResponseMode ResponseMode
	Scope        []string
	State        string
	Nonce        string
	MaxAge       *time.Duration
}

// Normalize trims surrounding whitespace from identifier-like fields. Scope
// tokens keep their request order; empty and repeated tokens are dropped.
func (r *AuthorizationRequest) Normalize() {
	r.ClientID = strings.TrimSpace(r.ClientID)
	r.RedirectURI = strings.TrimSpace(r.RedirectURI)
	r.Scope = pstrings.DedupeAndTrim(r.Scope)
}

// Validate enforces request invariants that do not need collaborator lookups.
func (r *AuthorizationRequest) Validate() error {
	if r.ClientID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "client_id is required")
	}
	if len(r.ResponseType) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "response_type must not be empty")
	}
	if r.MaxAge != nil && *r.MaxAge < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "max_age must not be negative")
	}
	return nil
}

// CanonicalScope joins scope tokens with single spaces, preserving request
// order, for storage as the session's scope string.
func (r *AuthorizationRequest) CanonicalScope() string {
	return strings.Join(r.Scope, " ")
}

// PkceRequest carries an optional PKCE challenge. The core binds it to the
// authorization code verbatim; verification happens at the token endpoint.
type PkceRequest struct {
	CodeChallenge       string
	CodeChallengeMethod string
}
