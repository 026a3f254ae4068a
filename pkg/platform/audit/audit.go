// Package audit emits security-relevant events from the authorization flow.
// Events are transport-agnostic; publishers fan them out to a sink (Kafka in
// production, memory in tests). Emission is best-effort: an audit failure is
// logged, never surfaced to the end user.
package audit

import (
	"context"
	"time"
)

// Decision classifies the outcome of an authorization request.
type Decision string

const (
	// DecisionGranted: the user was authenticated and fresh enough; a
	// redirect (or form post) back to the client was produced.
	DecisionGranted Decision = "granted"
	// DecisionAwaitingAuthentication: a pending session was stored and the
	// caller was told interactive authentication is required.
	DecisionAwaitingAuthentication Decision = "awaiting_authentication"
	// DecisionRejected: validation failed before or during the transaction.
	DecisionRejected Decision = "rejected"
)

// Event captures one authorization decision.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ClientID  string    `json:"client_id"`
	SessionID string    `json:"session_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Decision  Decision  `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	// CodeIssued records whether an authorization code was persisted; the
	// code itself never appears in audit output.
	CodeIssued   bool   `json:"code_issued"`
	ResponseType string `json:"response_type,omitempty"`
	ResponseMode string `json:"response_mode,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
	// Device is a human-readable summary of the requesting user agent.
	Device string `json:"device,omitempty"`
}

// Publisher delivers events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}
