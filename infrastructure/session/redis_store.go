// Package session implements the session store on Redis, with an
// in-memory variant for tests.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/config"
	"github.com/example/storefront/domain/session"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps the two session slots under per-session keys with a
// sliding TTL: every write refreshes the expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func basketKey(sessionID string) string {
	return "session:" + sessionID + ":basket"
}

func pendingOrderKey(sessionID string) string {
	return "session:" + sessionID + ":pending_order"
}

func (s *RedisStore) Basket(ctx context.Context, sessionID string) ([]session.BasketEntry, error) {
	data, err := s.client.Get(ctx, basketKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session basket: %w", err)
	}

	var entries []session.BasketEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode session basket: %w", err)
	}
	return entries, nil
}

func (s *RedisStore) SaveBasket(ctx context.Context, sessionID string, entries []session.BasketEntry) error {
	if len(entries) == 0 {
		return s.ClearBasket(ctx, sessionID)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode session basket: %w", err)
	}
	return s.client.Set(ctx, basketKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) ClearBasket(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, basketKey(sessionID)).Err()
}

func (s *RedisStore) PendingOrder(ctx context.Context, sessionID string) (string, error) {
	orderID, err := s.client.Get(ctx, pendingOrderKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read pending order: %w", err)
	}
	return orderID, nil
}

func (s *RedisStore) SavePendingOrder(ctx context.Context, sessionID, orderID string) error {
	return s.client.Set(ctx, pendingOrderKey(sessionID), orderID, s.ttl).Err()
}

func (s *RedisStore) ClearPendingOrder(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, pendingOrderKey(sessionID)).Err()
}

var _ session.Store = (*RedisStore)(nil)
