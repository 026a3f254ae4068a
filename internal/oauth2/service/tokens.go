package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"authgate/internal/oauth2/models"
)

// AccessTokenSource supplies the opaque bearer value returned for
// response_type=token. Real access-token generation (claims, signing,
// persistence for introspection) lives outside this core; implementations
// only have to hand back an opaque string.
type AccessTokenSource interface {
	Issue(ctx context.Context, sess *models.Session) (token string, expiresIn int64, err error)
}

// OpaqueTokenSource issues random opaque bearer tokens with a fixed
// lifetime. It does not persist them anywhere, so nothing can introspect or
// revoke them: a stand-in until a real token service is wired.
type OpaqueTokenSource struct {
	ExpiresIn int64
}

func (s OpaqueTokenSource) Issue(_ context.Context, _ *models.Session) (string, int64, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", 0, fmt.Errorf("draw access token: %w", err)
	}
	expiresIn := s.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	return base64.RawURLEncoding.EncodeToString(buf), expiresIn, nil
}
