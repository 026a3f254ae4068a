// Package registry holds the registered OAuth 2.0 client snapshot. The
// snapshot is built once at startup and read concurrently by every request;
// reloading means building a new snapshot and swapping the pointer, never
// mutating in place.
package registry

import (
	"net/url"

	dErrors "authgate/pkg/domain-errors"
)

// Client is one registered OAuth 2.0 client.
//
// Invariants:
//   - ClientID is non-empty
//   - RedirectURIs is non-empty and every entry is an absolute URL
type Client struct {
	ClientID     string   `yaml:"client_id"`
	RedirectURIs []string `yaml:"redirect_uris"`
}

// ResolveRedirectURI picks the redirect URI for a request. A requested URI
// must exactly match a registered one. When the request omits it, the single
// registered URI is used as the default; with several registered URIs there
// is no safe default and the request is rejected.
func (c *Client) ResolveRedirectURI(requested string) (string, error) {
	if requested == "" {
		if len(c.RedirectURIs) == 1 {
			return c.RedirectURIs[0], nil
		}
		return "", dErrors.New(dErrors.CodeInvalidRedirectURI,
			"redirect_uri is required when a client has multiple registered URIs")
	}
	for _, uri := range c.RedirectURIs {
		if uri == requested {
			return uri, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidRedirectURI,
		"redirect_uri does not match any registered URI")
}

// Registry is the immutable client snapshot.
type Registry struct {
	byID map[string]*Client
}

// New validates the client list and builds a snapshot.
func New(clients []Client) (*Registry, error) {
	byID := make(map[string]*Client, len(clients))
	for i := range clients {
		c := clients[i]
		if c.ClientID == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "client_id cannot be empty")
		}
		if len(c.RedirectURIs) == 0 {
			return nil, dErrors.New(dErrors.CodeBadRequest,
				"client "+c.ClientID+" has no redirect_uris")
		}
		for _, raw := range c.RedirectURIs {
			u, err := url.Parse(raw)
			if err != nil || !u.IsAbs() {
				return nil, dErrors.New(dErrors.CodeBadRequest,
					"client "+c.ClientID+" has a non-absolute redirect_uri: "+raw)
			}
		}
		if _, dup := byID[c.ClientID]; dup {
			return nil, dErrors.New(dErrors.CodeBadRequest,
				"duplicate client_id: "+c.ClientID)
		}
		byID[c.ClientID] = &c
	}
	return &Registry{byID: byID}, nil
}

// Find returns the client registered under id, or an unknown-client error.
// The unresolved id is not echoed back: it ends up in error responses.
func (r *Registry) Find(id string) (*Client, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, dErrors.New(dErrors.CodeUnknownClient, "client is not registered")
}
