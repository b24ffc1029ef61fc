package redisx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Dedup tracks processed event ids per consuming service.
type Dedup struct {
	Client  *redis.Client
	Service string
}

func (d *Dedup) Seen(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf(KeyDedup, d.Service, eventID)
	return Exists(ctx, d.Client, key)
}

func (d *Dedup) Mark(ctx context.Context, eventID string) error {
	key := fmt.Sprintf(KeyDedup, d.Service, eventID)
	return d.Client.Set(ctx, key, "1", TTLDedup).Err()
}
