package redisx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SubmitLock serializes checkout submissions per session so two near
// simultaneous submits of the same cart cannot both reach the processor.
type SubmitLock struct {
	Client *redis.Client
}

func (l *SubmitLock) Acquire(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf(KeySubmitLock, sessionID)
	return l.Client.SetNX(ctx, key, "1", TTLSubmitLock).Result()
}

func (l *SubmitLock) Release(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(KeySubmitLock, sessionID)
	return l.Client.Del(ctx, key).Err()
}
