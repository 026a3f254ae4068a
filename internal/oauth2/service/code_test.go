package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/oauth2/models"
)

func TestNewAuthorizationCode(t *testing.T) {
	t.Run("codes are 32 URL-safe characters without padding", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[A-Za-z0-9_-]{32}$`)
		for i := 0; i < 100; i++ {
			code, err := newAuthorizationCode()
			require.NoError(t, err)
			assert.Regexp(t, pattern, code)
		}
	})

	t.Run("successive codes do not collide", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			code, err := newAuthorizationCode()
			require.NoError(t, err)
			_, dup := seen[code]
			require.False(t, dup, "drew the same 192-bit code twice")
			seen[code] = struct{}{}
		}
	})
}

func TestPkceChallengeBoundToCode(t *testing.T) {
	s := newTestService(t)

	req := &models.AuthorizationRequest{
		ClientID:     "c1",
		RedirectURI:  "https://rp.example/cb",
		ResponseType: models.NewResponseTypeSet(models.ResponseTypeCode),
	}
	pkce := &models.PkceRequest{
		CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		CodeChallengeMethod: "S256",
	}

	result, err := s.svc.Authorize(context.Background(), req, pkce, "")
	require.NoError(t, err)

	stored, err := s.store.FindCodeBySession(context.Background(), result.Pending.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, pkce.CodeChallenge, stored.CodeChallenge)
	assert.Equal(t, pkce.CodeChallengeMethod, stored.CodeChallengeMethod)
}
