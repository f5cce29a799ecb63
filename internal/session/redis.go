package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session values in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := r.client.Get(ctx, sessionKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis session get failed: %w", err)
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	if err := r.client.Set(ctx, sessionKey(sessionID, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis session set failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}
