// Package handler exposes the authorization endpoint over HTTP. It stays
// thin: query-string decoding in, service call, response variant out.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"authgate/internal/oauth2/models"
	"authgate/internal/oauth2/service"
	"authgate/internal/platform/middleware"
	dErrors "authgate/pkg/domain-errors"
	"authgate/pkg/requestcontext"
)

// Service is the authorization flow the handler delegates to.
type Service interface {
	Authorize(ctx context.Context, req *models.AuthorizationRequest, pkce *models.PkceRequest, userSessionID string) (*service.AuthorizeResult, error)
}

// Handler handles the oauth2 authorization endpoint.
type Handler struct {
	authorize  Service
	logger     *slog.Logger
	signingKey []byte
}

// New creates the oauth2 handler. signingKey validates the optional session
// cookie credential.
func New(authorize Service, logger *slog.Logger, signingKey []byte) *Handler {
	return &Handler{authorize: authorize, logger: logger, signingKey: signingKey}
}

// Register mounts the authorization endpoint with its middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.OptionalUserSession(h.signingKey, h.logger))
	router.Get("/oauth2/authorize", h.handleAuthorize)

	r.Mount("/", router)
}

func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, pkce, err := decodeAuthorizationRequest(r)
	if err != nil {
		h.logger.WarnContext(ctx, "malformed authorization request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	result, err := h.authorize.Authorize(ctx, req, pkce, requestcontext.UserSessionID(ctx))
	if err != nil {
		level := slog.LevelWarn
		if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.logger.LogAttrs(ctx, level, "authorization rejected",
			slog.String("request_id", requestID),
			slog.String("client_id", req.ClientID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	switch result.Outcome {
	case service.OutcomeGranted:
		result.Response.WriteTo(w)
	case service.OutcomeAwaitingAuthentication:
		// Placeholder until the interactive login flow exists: surface the
		// pending session as a diagnostic payload.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(result.Pending)
	default:
		writeError(w, dErrors.New(dErrors.CodeInternal, "unexpected authorization outcome"))
	}
}

// decodeAuthorizationRequest maps the query string onto the request model.
// PKCE parameters ride along in the same query string and are returned
// separately when present.
func decodeAuthorizationRequest(r *http.Request) (*models.AuthorizationRequest, *models.PkceRequest, error) {
	q := r.URL.Query()

	responseType, err := models.ParseResponseTypes(q.Get("response_type"))
	if err != nil {
		return nil, nil, err
	}
	responseMode, err := models.ParseResponseMode(q.Get("response_mode"))
	if err != nil {
		return nil, nil, err
	}

	req := &models.AuthorizationRequest{
		ClientID:     q.Get("client_id"),
		RedirectURI:  q.Get("redirect_uri"),
		ResponseType: responseType,
		ResponseMode: responseMode,
		Scope:        strings.Fields(q.Get("scope")),
		State:        q.Get("state"),
		Nonce:        q.Get("nonce"),
	}

	if raw := q.Get("max_age"); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seconds < 0 {
			return nil, nil, dErrors.New(dErrors.CodeBadRequest, "max_age must be a non-negative integer")
		}
		maxAge := time.Duration(seconds) * time.Second
		req.MaxAge = &maxAge
	}

	var pkce *models.PkceRequest
	if challenge := q.Get("code_challenge"); challenge != "" {
		pkce = &models.PkceRequest{
			CodeChallenge:       challenge,
			CodeChallengeMethod: q.Get("code_challenge_method"),
		}
	}
	return req, pkce, nil
}

// writeError renders the JSON error envelope for a coded domain error.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}
