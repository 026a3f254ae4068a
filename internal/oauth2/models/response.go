package models

import (
	"net/url"
	"strconv"
)

// AuthorizationResponse holds the protocol parameters carried back to the
// client's redirect endpoint. Empty fields are omitted from the encoded
// output; a missing state is never synthesized.
type AuthorizationResponse struct {
	State       string
	Code        string
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// Params flattens the response into URL parameters for the redirect merger
// and the form-post renderer.
func (r AuthorizationResponse) Params() url.Values {
	params := url.Values{}
	if r.State != "" {
		params.Set("state", r.State)
	}
	if r.Code != "" {
		params.Set("code", r.Code)
	}
	if r.AccessToken != "" {
		params.Set("access_token", r.AccessToken)
		params.Set("token_type", r.TokenType)
		if r.ExpiresIn > 0 {
			params.Set("expires_in", strconv.FormatInt(r.ExpiresIn, 10))
		}
	}
	return params
}
