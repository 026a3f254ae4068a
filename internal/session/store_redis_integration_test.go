//go:build integration

package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"authgate/internal/session"
	"authgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// seed writes a session the way the login service would: JSON under the
// usersession key prefix.
func (s *RedisStoreSuite) seed(sess *session.UserSession) {
	raw, err := json.Marshal(sess)
	s.Require().NoError(err)
	err = s.redis.Client.Set(context.Background(), "usersession:"+sess.ID, raw, 0).Err()
	s.Require().NoError(err)
}

func (s *RedisStoreSuite) TestFindReturnsStoredSession() {
	lastAuthd := time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC)
	s.seed(&session.UserSession{
		ID:          "us-1",
		UserID:      "u1",
		Active:      true,
		LastAuthdAt: lastAuthd,
	})

	found, err := s.store.Find(context.Background(), "us-1")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("u1", found.UserID)
	s.True(found.Active)
	s.True(found.LastAuthdAt.Equal(lastAuthd))
}

func (s *RedisStoreSuite) TestFindAbsentSessionYieldsNil() {
	found, err := s.store.Find(context.Background(), "missing")
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *RedisStoreSuite) TestFindRejectsCorruptPayload() {
	err := s.redis.Client.Set(context.Background(), "usersession:bad", "{not json", 0).Err()
	s.Require().NoError(err)

	_, err = s.store.Find(context.Background(), "bad")
	s.Error(err)
}
