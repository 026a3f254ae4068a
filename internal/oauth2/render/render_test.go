package render

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/oauth2/models"
	dErrors "authgate/pkg/domain-errors"
)

func params(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i < len(pairs)-1; i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func TestBackToClientQueryMode(t *testing.T) {
	t.Run("merges over an existing query string", func(t *testing.T) {
		resp, err := BackToClient("https://x/cb?existing=2", models.ResponseModeQuery, params("a", "1"))
		require.NoError(t, err)

		redirect, ok := resp.(Redirect)
		require.True(t, ok)

		loc, err := url.Parse(redirect.Location)
		require.NoError(t, err)
		q := loc.Query()
		assert.Equal(t, "2", q.Get("existing"))
		assert.Equal(t, "1", q.Get("a"))
		assert.Empty(t, loc.Fragment, "query mode must not touch the fragment")
	})

	t.Run("new parameters win on key collision", func(t *testing.T) {
		resp, err := BackToClient("https://x/cb?existing=2", models.ResponseModeQuery, params("existing", "3"))
		require.NoError(t, err)

		loc, err := url.Parse(resp.(Redirect).Location)
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, loc.Query()["existing"])
	})

	t.Run("client-supplied code cannot shadow the issued one", func(t *testing.T) {
		resp, err := BackToClient("https://x/cb?code=attacker&state=forged",
			models.ResponseModeQuery, params("code", "genuine", "state", "xyz"))
		require.NoError(t, err)

		loc, err := url.Parse(resp.(Redirect).Location)
		require.NoError(t, err)
		assert.Equal(t, []string{"genuine"}, loc.Query()["code"])
		assert.Equal(t, []string{"xyz"}, loc.Query()["state"])
	})

	t.Run("writes a 303 with Location", func(t *testing.T) {
		resp, err := BackToClient("https://x/cb", models.ResponseModeQuery, params("code", "abc"))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		resp.WriteTo(rec)
		assert.Equal(t, 303, rec.Code)
		assert.Equal(t, "https://x/cb?code=abc", rec.Header().Get("Location"))
	})

	t.Run("malformed existing query is a malformed redirect target", func(t *testing.T) {
		_, err := BackToClient("https://x/cb?bad=%zz", models.ResponseModeQuery, params("a", "1"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeMalformedRedirectTarget))
	})
}

func TestBackToClientFragmentMode(t *testing.T) {
	t.Run("merges into the fragment and leaves the query alone", func(t *testing.T) {
		resp, err := BackToClient("https://x/cb?keep=me#existing=2",
			models.ResponseModeFragment, params("access_token", "tok", "existing", "3"))
		require.NoError(t, err)

		loc, err := url.Parse(resp.(Redirect).Location)
		require.NoError(t, err)
		assert.Equal(t, "keep=me", loc.RawQuery)

		frag, err := url.ParseQuery(loc.EscapedFragment())
		require.NoError(t, err)
		assert.Equal(t, "tok", frag.Get("access_token"))
		assert.Equal(t, "3", frag.Get("existing"))
	})

	t.Run("malformed existing fragment is a malformed redirect target", func(t *testing.T) {
		_, err := BackToClient("https://x/cb#bad=%zz", models.ResponseModeFragment, params("a", "1"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeMalformedRedirectTarget))
	})
}

func TestBackToClientFormPostMode(t *testing.T) {
	resp, err := BackToClient("https://x/cb?existing=2", models.ResponseModeFormPost,
		params("code", "abc", "state", "x<y"))
	require.NoError(t, err)

	html, ok := resp.(HTML)
	require.True(t, ok)
	body := string(html.Body)

	// The action keeps the URI untouched, existing query included.
	assert.Contains(t, body, `action="https://x/cb?existing=2"`)
	assert.Contains(t, body, `name="code" value="abc"`)
	assert.Contains(t, body, `name="state" value="x&lt;y"`)
	assert.Contains(t, body, `onload="document.forms[0].submit()"`)

	rec := httptest.NewRecorder()
	resp.WriteTo(rec)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestBackToClientRejectsUnresolvedMode(t *testing.T) {
	_, err := BackToClient("https://x/cb", models.ResponseModeUnset, params("a", "1"))
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidResponseMode))
}
