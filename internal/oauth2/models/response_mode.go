package models

import (
	dErrors "authgate/pkg/domain-errors"
)

// ResponseMode is the encoding strategy for returning protocol parameters to
// the client. The zero value means the request did not suggest one.
type ResponseMode string

const (
	ResponseModeUnset    ResponseMode = ""
	ResponseModeQuery    ResponseMode = "query"
	ResponseModeFragment ResponseMode = "fragment"
	ResponseModeFormPost ResponseMode = "form_post"
)

// ParseResponseMode validates the optional response_mode parameter.
func ParseResponseMode(raw string) (ResponseMode, error) {
	switch m := ResponseMode(raw); m {
	case ResponseModeUnset, ResponseModeQuery, ResponseModeFragment, ResponseModeFormPost:
		return m, nil
	default:
		return ResponseModeUnset, dErrors.New(dErrors.CodeBadRequest, "unknown response_mode value: "+raw)
	}
}

// ResolveResponseMode decides which response mode applies for the given
// response types, honoring the suggested mode where the protocol allows it.
//
// If the response type includes "token" or "id_token", the default mode is
// "fragment" and "query" must not be used: tokens in a query string leak via
// referrer headers and browser history. In all other cases every mode is
// allowed, defaulting to "query".
//
// Pure and deterministic; safe to call at several validation layers.
func ResolveResponseMode(responseType ResponseTypeSet, suggested ResponseMode) (ResponseMode, error) {
	if responseType.HasImplicit() {
		switch suggested {
		case ResponseModeUnset:
			return ResponseModeFragment, nil
		case ResponseModeQuery:
			return ResponseModeUnset, dErrors.New(dErrors.CodeInvalidResponseMode,
				"response_mode=query is not allowed for implicit or hybrid flows")
		case ResponseModeFragment, ResponseModeFormPost:
			return suggested, nil
		default:
			return ResponseModeUnset, dErrors.New(dErrors.CodeInvalidResponseMode,
				"unknown response_mode: "+string(suggested))
		}
	}

	if suggested == ResponseModeUnset {
		return ResponseModeQuery, nil
	}
	switch suggested {
	case ResponseModeQuery, ResponseModeFragment, ResponseModeFormPost:
		return suggested, nil
	default:
		return ResponseModeUnset, dErrors.New(dErrors.CodeInvalidResponseMode,
			"unknown response_mode: "+string(suggested))
	}
}
