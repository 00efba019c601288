package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued admin sessions so logout revokes server-side.
type SessionStore interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Active(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

type redisSessionCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessionStore keeps one key per active session, expiring with the token.
type RedisSessionStore struct {
	client redisSessionCommander
}

// NewRedisSessionStore wraps a redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(jti string) string {
	return "admin:session:" + jti
}

// Save records the session until the token expires.
func (s *RedisSessionStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(jti), 1, ttl).Err()
}

// Active reports whether the session has been issued and not revoked.
func (s *RedisSessionStore) Active(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke removes the session; subsequent bearer checks fail.
func (s *RedisSessionStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, sessionKey(jti)).Err()
}
