// Package redis keeps order idempotency keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockway/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultIdempotencyTTL = 24 * time.Hour
	orderKeyPrefix        = "idem:order:create:"
)

type commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
}

type IdempotencyStore struct {
	client commander
	ttl    time.Duration
}

func NewClient(addr string, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewIdempotencyStore(client *goredis.Client, ttl time.Duration) *IdempotencyStore {
	return newIdempotencyStore(client, ttl)
}

func newIdempotencyStore(client commander, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func orderKey(shopkeeperID kernel.UUID, key string) string {
	return orderKeyPrefix + shopkeeperID.String() + ":" + key
}

func (s *IdempotencyStore) Lookup(ctx context.Context, shopkeeperID kernel.UUID, key string) (kernel.UUID, bool, error) {
	raw, err := s.client.Get(ctx, orderKey(shopkeeperID, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	orderID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("idempotency lookup: stored value %q: %w", raw, err)
	}
	return orderID, true, nil
}

// Remember keeps the first order recorded for key until the TTL expires.
func (s *IdempotencyStore) Remember(ctx context.Context, shopkeeperID kernel.UUID, key string, orderID kernel.UUID) error {
	if err := s.client.SetNX(ctx, orderKey(shopkeeperID, key), orderID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}
