package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"authgate/internal/oauth2/models"
	"authgate/internal/oauth2/store"
)

// codeEntropy is the random payload of an authorization code: 192 bits,
// which encode to a 32-character URL-safe string.
const codeEntropy = 24

// newAuthorizationCode draws a fresh opaque code from the CSPRNG. The raw
// bytes never leave this function.
func newAuthorizationCode() (string, error) {
	buf := make([]byte, codeEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("draw authorization code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// issueCode generates and persists the authorization code for sess inside
// the caller's transaction, bound to the optional PKCE challenge. The
// orchestrator calls this at most once per session; issuing twice would put
// two valid codes on one session.
func (s *Service) issueCode(
	ctx context.Context,
	tx store.Tx,
	sess *models.Session,
	pkce *models.PkceRequest,
) (*models.AuthorizationCodeRecord, error) {
	code, err := newAuthorizationCode()
	if err != nil {
		return nil, err
	}
	record := &models.AuthorizationCodeRecord{
		Code:      code,
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
	}
	if pkce != nil {
		record.CodeChallenge = pkce.CodeChallenge
		record.CodeChallengeMethod = pkce.CodeChallengeMethod
	}
	if err := tx.AddCode(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
