// Package domainerrors provides coded errors for protocol and validation
// failures. Stores return sentinel errors (pkg/platform/sentinel); services
// translate them into these coded errors before they reach transport.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the class of a domain error. Transport layers map codes to
// HTTP statuses; codes are stable, messages are not.
type Code string

const (
	// CodeBadRequest covers malformed or incomplete authorization requests.
	CodeBadRequest Code = "bad_request"
	// CodeUnknownClient means the client_id is not registered. No redirect
	// target exists yet, so this must never turn into a redirect.
	CodeUnknownClient Code = "unknown_client"
	// CodeInvalidRedirectURI means the requested redirect URI is not among
	// the client's registered URIs, or none could be chosen.
	CodeInvalidRedirectURI Code = "invalid_redirect_uri"
	// CodeInvalidResponseMode means the suggested response mode is not legal
	// for the requested response types.
	CodeInvalidResponseMode Code = "invalid_response_mode"
	// CodeMalformedRedirectTarget means a registered redirect URI carries a
	// query or fragment that cannot be decoded. Client misconfiguration.
	CodeMalformedRedirectTarget Code = "malformed_redirect_target"
	// CodeEncoding means response parameters could not be serialized.
	CodeEncoding Code = "encoding_error"
	// CodePersistence covers transactional storage failures. The transaction
	// has been rolled back; retrying is safe.
	CodePersistence Code = "persistence_error"
	// CodeUnsupported marks a requested feature that is deliberately not
	// implemented (ID token issuance).
	CodeUnsupported Code = "unsupported_feature"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal"
)

// Error carries a code, a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer should use.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeUnknownClient, CodeInvalidRedirectURI, CodeInvalidResponseMode:
		return http.StatusBadRequest
	case CodeMalformedRedirectTarget, CodeEncoding:
		return http.StatusInternalServerError
	case CodePersistence:
		return http.StatusServiceUnavailable
	case CodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
