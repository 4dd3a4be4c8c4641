package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long the opaque ids outlive the shopper. The remote
// cart and address they point at expire server-side on a similar horizon.
const sessionTTL = 24 * time.Hour

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by Redis, for deployments where the
// storefront session must survive a process restart (kiosk mode, shared
// terminals). Keys are namespaced per session id.
func NewRedisStore(client *redis.Client, sessionID string) Store {
	return &redisStore{
		client: client,
		prefix: "session:" + sessionID + ":",
	}
}

func (r *redisStore) Get(ctx context.Context, key string) (string, bool, error) {

	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {

		if err == redis.Nil {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	return value, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value string) error {

	err := r.client.Set(ctx, r.prefix+key, value, sessionTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {

	err := r.client.Del(ctx, r.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
