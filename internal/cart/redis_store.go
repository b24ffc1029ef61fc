package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roasthouse/checkout-api/internal/redisx"
)

// RedisStore is the fast cart tier. Values are JSON objects mapping slug to
// quantity; stored strings are decoded against that schema, never evaluated.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *RedisStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return redisx.TTLCart
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	key := fmt.Sprintf(redisx.KeyCart, sessionID)
	data, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	key := fmt.Sprintf(redisx.KeyCart, sessionID)
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.Client.Set(ctx, key, data, s.ttl()).Err(); err != nil {
		return fmt.Errorf("redis save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(redisx.KeyCart, sessionID)
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis clear cart: %w", err)
	}
	return nil
}
