package middleware

import (
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"authgate/pkg/requestcontext"
)

// SessionCookieName carries the signed end-user session credential. Issuing
// the cookie belongs to the login service; this middleware only reads it.
const SessionCookieName = "authgate_session"

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// OptionalUserSession extracts the end-user session ID from the signed
// session cookie when one is present and valid. An absent, expired or
// tampered cookie degrades to anonymous; the authorization flow then asks
// for interactive authentication instead of failing the request.
func OptionalUserSession(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims,
				func(t *jwt.Token) (any, error) { return signingKey, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid || claims.SessionID == "" {
				logger.DebugContext(r.Context(), "ignoring invalid session cookie",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithUserSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
