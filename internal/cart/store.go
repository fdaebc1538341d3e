package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store persists carts keyed by user id. Reads degrade to an empty cart:
// a missing key, a corrupt value, or a backend failure must never break
// the page, so Get has no error return.
type Store interface {
	Get(ctx context.Context, userID string) Cart
	Save(ctx context.Context, userID string, cart Cart) error
	Clear(ctx context.Context, userID string) error
}

const cartKeyPrefix = "cart"

// RedisStore stores carts as JSON values in Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a RedisStore. A non-positive ttl means carts
// never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("%s:%s", cartKeyPrefix, userID)
}

// Get loads the cart for userID. Any failure is logged and an empty cart
// is returned; losing a cart is preferable to a broken page.
func (s *RedisStore) Get(ctx context.Context, userID string) Cart {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return Cart{}
	}
	if err != nil {
		s.logger.Error("Failed to read cart",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return Cart{}
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.Error("Discarding corrupt cart value",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return Cart{}
	}

	return cart
}

// Save writes the cart for userID, replacing any previous value.
func (s *RedisStore) Save(ctx context.Context, userID string, cart Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	var ttl time.Duration
	if s.ttl > 0 {
		ttl = s.ttl
	}

	if err := s.client.Set(ctx, cartKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Clear removes the cart for userID. Clearing an absent cart is a no-op.
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
