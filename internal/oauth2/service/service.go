// Package service implements the authorization decision flow: it validates
// the client, opens the storage transaction, issues the authorization code
// when requested, checks authentication freshness and produces the outbound
// client response.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"authgate/internal/oauth2/metrics"
	"authgate/internal/oauth2/models"
	"authgate/internal/oauth2/render"
	"authgate/internal/oauth2/store"
	"authgate/internal/registry"
	"authgate/internal/session"
	dErrors "authgate/pkg/domain-errors"
	"authgate/pkg/platform/audit"
	"authgate/pkg/platform/device"
	"authgate/pkg/requestcontext"

	"github.com/google/uuid"
)

// UserSessionStore is the read-only end-user session lookup the flow needs.
type UserSessionStore interface {
	Find(ctx context.Context, id string) (*session.UserSession, error)
}

// Outcome is the terminal state of an authorization request that did not
// fail validation.
type Outcome string

const (
	// OutcomeGranted means the response carries the protocol parameters back
	// to the client's redirect endpoint.
	OutcomeGranted Outcome = "granted"
	// OutcomeAwaitingAuthentication means the pending session (and code, if
	// issued) were persisted and the user must authenticate interactively.
	OutcomeAwaitingAuthentication Outcome = "awaiting_authentication"
)

// AuthorizeResult is the closed set of successful authorization outcomes.
// Exactly one of Response/Pending is set, matching Outcome.
type AuthorizeResult struct {
	Outcome  Outcome
	Response render.Response
	Pending  *PendingAuthentication
}

// PendingAuthentication is the diagnostic payload returned while the
// interactive login flow remains unimplemented. Not a stable contract.
type PendingAuthentication struct {
	Session     *models.Session                 `json:"session"`
	Code        *models.AuthorizationCodeRecord `json:"code,omitempty"`
	RedirectURI string                          `json:"redirect_uri"`
}

// Service orchestrates the authorization flow over its collaborators.
type Service struct {
	clients      *registry.Registry
	store        store.Store
	userSessions UserSessionStore
	tokens       AccessTokenSource
	publisher    audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// New wires the authorization service. publisher and metrics may not be nil;
// use audit.NewMemoryPublisher and metrics.New in tests.
func New(
	clients *registry.Registry,
	st store.Store,
	userSessions UserSessionStore,
	tokens AccessTokenSource,
	publisher audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		clients:      clients,
		store:        st,
		userSessions: userSessions,
		tokens:       tokens,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
		tracer:       otel.Tracer("authgate/internal/oauth2/service"),
		now:          time.Now,
	}
}

// Authorize processes one authorization request. userSessionID is the
// optional end-user session presented via the transport credential; empty
// means anonymous.
//
// Validation failures (unknown client, unresolvable redirect URI, illegal
// response mode) return before any transaction is opened. Once the
// transaction is open, any failure rolls back; session and code become
// visible only on commit.
func (s *Service) Authorize(
	ctx context.Context,
	req *models.AuthorizationRequest,
	pkce *models.PkceRequest,
	userSessionID string,
) (*AuthorizeResult, error) {
	ctx, span := s.tracer.Start(ctx, "oauth2.Authorize",
		trace.WithAttributes(attribute.String("oauth2.client_id", req.ClientID)))
	defer span.End()

	started := s.now()
	defer func() { s.metrics.AuthorizeDuration.Observe(s.now().Sub(started).Seconds()) }()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.rejected(ctx, req, nil, err)
	}

	// First, find out what client it is.
	client, err := s.clients.Find(req.ClientID)
	if err != nil {
		return nil, s.rejected(ctx, req, nil, err)
	}

	// Then, figure out the redirect URI. This has to come before anything
	// that could produce a redirect: an unresolvable target never receives
	// one.
	redirectURI, err := client.ResolveRedirectURI(req.RedirectURI)
	if err != nil {
		return nil, s.rejected(ctx, req, nil, err)
	}

	// Response-mode legality is pure and checked before the transaction so
	// an illegal combination never touches storage.
	responseMode, err := models.ResolveResponseMode(req.ResponseType, req.ResponseMode)
	if err != nil {
		return nil, s.rejected(ctx, req, nil, err)
	}

	now := s.now()
	sess := &models.Session{
		ID:            uuid.New(),
		UserSessionID: userSessionID,
		ClientID:      client.ClientID,
		Scope:         req.CanonicalScope(),
		State:         req.State,
		Nonce:         req.Nonce,
		MaxAge:        req.MaxAge,
		ResponseType:  req.ResponseType,
		ResponseMode:  responseMode,
		CreatedAt:     now,
	}

	var (
		code   *models.AuthorizationCodeRecord
		fresh  bool
		params models.AuthorizationResponse
	)
	err = s.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.StartSession(ctx, sess); err != nil {
			return err
		}

		if req.ResponseType.Has(models.ResponseTypeCode) {
			issued, err := s.issueCode(ctx, tx, sess, pkce)
			if err != nil {
				return err
			}
			code = issued
		}

		var userSession *session.UserSession
		if sess.UserSessionID != "" {
			userSession, err = s.userSessions.Find(ctx, sess.UserSessionID)
			if err != nil {
				return err
			}
		}

		fresh = isFresh(userSession, sess.MaxAuthTime())
		if !fresh {
			// Commit anyway: the pending session and code must survive so
			// the interactive login step can resume them.
			return nil
		}

		params = models.AuthorizationResponse{State: sess.State}
		if code != nil {
			params.Code = code.Code
		}
		if req.ResponseType.Has(models.ResponseTypeToken) {
			token, expiresIn, err := s.tokens.Issue(ctx, sess)
			if err != nil {
				return err
			}
			params.AccessToken = token
			params.TokenType = "Bearer"
			params.ExpiresIn = expiresIn
		}
		if req.ResponseType.Has(models.ResponseTypeIDToken) {
			// Failing fast beats silently returning a response with the
			// id_token field missing.
			return dErrors.New(dErrors.CodeUnsupported, "id_token issuance is not implemented")
		}
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, req, sess, translateTxError(err))
	}

	if !fresh {
		s.observe(ctx, req, sess, audit.DecisionAwaitingAuthentication, code != nil, "")
		return &AuthorizeResult{
			Outcome: OutcomeAwaitingAuthentication,
			Pending: &PendingAuthentication{
				Session:     sess,
				Code:        code,
				RedirectURI: redirectURI,
			},
		}, nil
	}

	response, err := render.BackToClient(redirectURI, responseMode, params.Params())
	if err != nil {
		// The session and code committed, but the registered redirect URI is
		// unusable. Surfaced as a server error; nothing was sent to the
		// client.
		return nil, s.rejected(ctx, req, sess, err)
	}

	s.observe(ctx, req, sess, audit.DecisionGranted, code != nil, "")
	return &AuthorizeResult{Outcome: OutcomeGranted, Response: response}, nil
}

// translateTxError keeps coded domain errors and wraps everything else as a
// persistence failure.
func translateTxError(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodePersistence, "authorization transaction failed")
}

// observe emits the audit event and metrics for a terminal outcome.
func (s *Service) observe(
	ctx context.Context,
	req *models.AuthorizationRequest,
	sess *models.Session,
	decision audit.Decision,
	codeIssued bool,
	reason string,
) {
	switch decision {
	case audit.DecisionGranted:
		s.metrics.ObserveOutcome(metrics.OutcomeGranted)
	case audit.DecisionAwaitingAuthentication:
		s.metrics.ObserveOutcome(metrics.OutcomeAwaiting)
	case audit.DecisionRejected:
		s.metrics.ObserveOutcome(metrics.OutcomeRejected)
	}
	if codeIssued {
		s.metrics.IncrementCodesIssued()
	}

	event := audit.Event{
		Timestamp:  s.now(),
		ClientID:   req.ClientID,
		Decision:   decision,
		Reason:     reason,
		CodeIssued: codeIssued,
		RequestID:  requestcontext.RequestID(ctx),
		Device:     device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	}
	if sess != nil {
		event.SessionID = sess.ID.String()
		event.ResponseType = sess.ResponseType.String()
		event.ResponseMode = string(sess.ResponseMode)
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"client_id", req.ClientID,
			"error", err.Error(),
		)
	}
}

// rejected records a rejection and returns the error unchanged.
func (s *Service) rejected(
	ctx context.Context,
	req *models.AuthorizationRequest,
	sess *models.Session,
	err error,
) error {
	s.observe(ctx, req, sess, audit.DecisionRejected, false, string(dErrors.CodeOf(err)))
	return err
}
