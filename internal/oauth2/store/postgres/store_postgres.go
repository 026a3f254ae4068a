// Package postgres implements the oauth2 store on PostgreSQL. This store is
// pure I/O; code generation and protocol rules live in the service layer.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"authgate/internal/oauth2/models"
	"authgate/internal/oauth2/store"
	"authgate/pkg/platform/sentinel"
)

// Store persists authorization sessions and codes in PostgreSQL.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed oauth2 store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunInTx opens a transaction, runs fn with a transactional view and commits
// when fn returns nil. Any error rolls back; no partial session/code state
// survives an aborted transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = sqlTx.Rollback()
	}()

	if err := fn(&tx{tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type tx struct {
	tx *sql.Tx
}

func (t *tx) StartSession(ctx context.Context, sess *models.Session) error {
	query := `
		INSERT INTO oauth2_sessions
			(id, user_session_id, client_id, scope, state, nonce, max_age_seconds, response_type, response_mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := t.tx.ExecContext(ctx, query,
		sess.ID,
		nullString(sess.UserSessionID),
		sess.ClientID,
		sess.Scope,
		nullString(sess.State),
		nullString(sess.Nonce),
		nullSeconds(sess.MaxAge),
		sess.ResponseType.String(),
		string(sess.ResponseMode),
		sess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("start session: %w", translate(err))
	}
	return nil
}

func (t *tx) AddCode(ctx context.Context, code *models.AuthorizationCodeRecord) error {
	query := `
		INSERT INTO oauth2_authorization_codes
			(code, session_id, code_challenge, code_challenge_method, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := t.tx.ExecContext(ctx, query,
		code.Code,
		code.SessionID,
		nullString(code.CodeChallenge),
		nullString(code.CodeChallengeMethod),
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add code: %w", translate(err))
	}
	return nil
}

func (s *Store) FindSession(ctx context.Context, id models.SessionID) (*models.Session, error) {
	query := `
		SELECT id, user_session_id, client_id, scope, state, nonce, max_age_seconds, response_type, response_mode, created_at
		FROM oauth2_sessions
		WHERE id = $1
	`
	return scanSession(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) FindCodeBySession(ctx context.Context, id models.SessionID) (*models.AuthorizationCodeRecord, error) {
	query := `
		SELECT code, session_id, code_challenge, code_challenge_method, created_at
		FROM oauth2_authorization_codes
		WHERE session_id = $1
	`
	var (
		rec       models.AuthorizationCodeRecord
		challenge sql.NullString
		method    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.Code, &rec.SessionID, &challenge, &method, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	rec.CodeChallenge = challenge.String
	rec.CodeChallengeMethod = method.String
	return &rec, nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		sess          models.Session
		userSessionID sql.NullString
		state         sql.NullString
		nonce         sql.NullString
		maxAgeSecs    sql.NullInt64
		responseType  string
		responseMode  string
	)
	err := row.Scan(
		&sess.ID, &userSessionID, &sess.ClientID, &sess.Scope,
		&state, &nonce, &maxAgeSecs, &responseType, &responseMode, &sess.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	sess.UserSessionID = userSessionID.String
	sess.State = state.String
	sess.Nonce = nonce.String
	if maxAgeSecs.Valid {
		d := time.Duration(maxAgeSecs.Int64) * time.Second
		sess.MaxAge = &d
	}
	rt, err := models.ParseResponseTypes(responseType)
	if err != nil {
		return nil, fmt.Errorf("decode stored response_type: %w", err)
	}
	sess.ResponseType = rt
	sess.ResponseMode = models.ResponseMode(responseMode)
	return &sess, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullSeconds(d *time.Duration) sql.NullInt64 {
	if d == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d.Seconds()), Valid: true}
}

// translate maps driver errors to store sentinels where they carry meaning
// for the service layer.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%s: %w", pqErr.Message, sentinel.ErrConflict)
	}
	return err
}
