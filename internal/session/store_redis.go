package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "usersession:"

// RedisStore reads user sessions from Redis. Sessions are written by the
// login service as JSON under "usersession:<id>"; this store only reads.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed user session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Find(ctx context.Context, id string) (*UserSession, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user session: %w", err)
	}
	var sess UserSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode user session: %w", err)
	}
	return &sess, nil
}
