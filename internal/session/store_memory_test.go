package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreFind(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	t.Run("absent session yields nil without error", func(t *testing.T) {
		sess, err := store.Find(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("stored session is found", func(t *testing.T) {
		store.Put(&UserSession{
			ID:          "us-1",
			UserID:      "u1",
			Active:      true,
			LastAuthdAt: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
		})

		sess, err := store.Find(ctx, "us-1")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "u1", sess.UserID)
		assert.True(t, sess.Active)
	})

	t.Run("returned session is a copy", func(t *testing.T) {
		store.Put(&UserSession{ID: "us-2", UserID: "u2", Active: true})

		first, err := store.Find(ctx, "us-2")
		require.NoError(t, err)
		first.Active = false

		second, err := store.Find(ctx, "us-2")
		require.NoError(t, err)
		assert.True(t, second.Active)
	})
}
