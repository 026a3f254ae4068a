package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"authgate/internal/oauth2/store/memory"
	"authgate/internal/registry"
	"authgate/internal/session"
	"authgate/pkg/platform/audit"
)

type testService struct {
	svc          *Service
	store        *memory.Store
	userSessions *session.InMemoryStore
	publisher    *audit.MemoryPublisher
}

// newTestService wires a service over in-memory collaborators with a fixed
// clock and a single registered client "c1".
func newTestService(t *testing.T) *testService {
	t.Helper()

	clients, err := registry.New([]registry.Client{
		{ClientID: "c1", RedirectURIs: []string{"https://rp.example/cb"}},
	})
	require.NoError(t, err)

	ts := &testService{
		store:        memory.New(),
		userSessions: session.NewInMemoryStore(),
		publisher:    audit.NewMemoryPublisher(),
	}
	ts.svc = New(
		clients,
		ts.store,
		ts.userSessions,
		OpaqueTokenSource{},
		ts.publisher,
		sharedMetrics,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ts.svc.now = func() time.Time { return now }
	return ts
}
