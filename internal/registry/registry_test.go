package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "authgate/pkg/domain-errors"
)

func TestRegistryFind(t *testing.T) {
	reg, err := New([]Client{
		{ClientID: "c1", RedirectURIs: []string{"https://rp.example/cb"}},
	})
	require.NoError(t, err)

	t.Run("returns registered client", func(t *testing.T) {
		c, err := reg.Find("c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", c.ClientID)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := reg.Find("ghost")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnknownClient))
		assert.NotContains(t, err.Error(), "ghost", "unresolved client_id must not be echoed")
	})
}

func TestResolveRedirectURI(t *testing.T) {
	single := &Client{ClientID: "one", RedirectURIs: []string{"https://a.example/cb"}}
	multi := &Client{ClientID: "two", RedirectURIs: []string{"https://a.example/cb", "https://b.example/cb"}}

	t.Run("exact match against registered set", func(t *testing.T) {
		uri, err := multi.ResolveRedirectURI("https://b.example/cb")
		require.NoError(t, err)
		assert.Equal(t, "https://b.example/cb", uri)
	})

	t.Run("omitted URI defaults to the single registration", func(t *testing.T) {
		uri, err := single.ResolveRedirectURI("")
		require.NoError(t, err)
		assert.Equal(t, "https://a.example/cb", uri)
	})

	t.Run("omitted URI with several registrations is rejected", func(t *testing.T) {
		_, err := multi.ResolveRedirectURI("")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidRedirectURI))
	})

	t.Run("near miss does not match", func(t *testing.T) {
		_, err := single.ResolveRedirectURI("https://a.example/cb/extra")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidRedirectURI))
	})
}

func TestRegistryValidation(t *testing.T) {
	t.Run("rejects duplicate client ids", func(t *testing.T) {
		_, err := New([]Client{
			{ClientID: "dup", RedirectURIs: []string{"https://a.example/cb"}},
			{ClientID: "dup", RedirectURIs: []string{"https://b.example/cb"}},
		})
		require.Error(t, err)
	})

	t.Run("rejects relative redirect URIs", func(t *testing.T) {
		_, err := New([]Client{{ClientID: "c", RedirectURIs: []string{"/cb"}}})
		require.Error(t, err)
	})

	t.Run("rejects clients without redirect URIs", func(t *testing.T) {
		_, err := New([]Client{{ClientID: "c"}})
		require.Error(t, err)
	})
}

func TestLoadYAML(t *testing.T) {
	reg, err := Load([]byte(`
clients:
  - client_id: local
    redirect_uris:
      - https://rp.example/callback
  - client_id: spa
    redirect_uris:
      - https://spa.example/cb
      - https://spa.example/silent
`))
	require.NoError(t, err)

	c, err := reg.Find("spa")
	require.NoError(t, err)
	assert.Len(t, c.RedirectURIs, 2)

	_, err = Load([]byte(`clients: [`))
	require.Error(t, err)
}
