// Package render encodes authorization response parameters into the outbound
// client response: a 303 redirect carrying them in the query or fragment, or
// an auto-submitting HTML form for form_post. No I/O.
package render

import (
	"net/http"
	"net/url"

	"authgate/internal/oauth2/models"
	dErrors "authgate/pkg/domain-errors"
)

// Response is the closed set of renderable client responses.
type Response interface {
	// WriteTo emits the response on w.
	WriteTo(w http.ResponseWriter)

	isResponse()
}

// Redirect is a 303 redirect to the client's redirect endpoint.
type Redirect struct {
	Location string
}

func (r Redirect) WriteTo(w http.ResponseWriter) {
	w.Header().Set("Location", r.Location)
	w.WriteHeader(http.StatusSeeOther)
}

func (Redirect) isResponse() {}

// HTML is a rendered form_post document.
type HTML struct {
	Body []byte
}

func (h HTML) WriteTo(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.Body)
}

func (HTML) isResponse() {}

// BackToClient builds the response that carries params back to redirectURI
// using the resolved response mode.
//
// For query and fragment modes the URI's existing component is decoded and
// the new parameters are layered on top, new keys winning on collision. The
// server's protocol parameters therefore can never be shadowed by anything a
// client pre-baked into its registered redirect URI.
func BackToClient(redirectURI string, mode models.ResponseMode, params url.Values) (Response, error) {
	target, err := url.Parse(redirectURI)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeMalformedRedirectTarget, "redirect URI does not parse")
	}

	switch mode {
	case models.ResponseModeQuery:
		merged, err := mergeEncoded(target.RawQuery, params)
		if err != nil {
			return nil, err
		}
		target.RawQuery = merged
		return Redirect{Location: target.String()}, nil

	case models.ResponseModeFragment:
		merged, err := mergeEncoded(target.EscapedFragment(), params)
		if err != nil {
			return nil, err
		}
		target.Fragment = ""
		target.RawFragment = ""
		return Redirect{Location: target.String() + "#" + merged}, nil

	case models.ResponseModeFormPost:
		body, err := FormPost(target.String(), params)
		if err != nil {
			return nil, err
		}
		return HTML{Body: body}, nil

	default:
		return nil, dErrors.New(dErrors.CodeInvalidResponseMode, "unresolved response mode")
	}
}

// mergeEncoded decodes an existing urlencoded component, layers params over
// it and re-encodes. Existing keys not present in params survive untouched.
func mergeEncoded(existing string, params url.Values) (string, error) {
	merged, err := url.ParseQuery(existing)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeMalformedRedirectTarget,
			"existing redirect URI parameters do not decode")
	}
	for key, values := range params {
		merged[key] = values
	}
	return merged.Encode(), nil
}
