package cart

import (
	"context"
	"log/slog"
)

// FallbackStore degrades transparently to a secondary store when the primary
// is unreachable. Callers never see a cache outage; they may see an older
// cart from the fallback tier.
type FallbackStore struct {
	Primary   Store
	Secondary Store
	Log       *slog.Logger
}

func (s *FallbackStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	c, err := s.Primary.Get(ctx, sessionID)
	if err != nil {
		s.degraded(ctx, "get", err)
		return s.Secondary.Get(ctx, sessionID)
	}
	return c, nil
}

func (s *FallbackStore) Save(ctx context.Context, sessionID string, c Cart) error {
	if err := s.Primary.Save(ctx, sessionID, c); err != nil {
		s.degraded(ctx, "save", err)
		return s.Secondary.Save(ctx, sessionID, c)
	}
	return nil
}

// Clear removes the cart from both tiers; after a degradation window the
// cart may live in either one.
func (s *FallbackStore) Clear(ctx context.Context, sessionID string) error {
	perr := s.Primary.Clear(ctx, sessionID)
	if perr != nil {
		s.degraded(ctx, "clear", perr)
	}
	if err := s.Secondary.Clear(ctx, sessionID); err != nil {
		return err
	}
	return perr
}

func (s *FallbackStore) degraded(_ context.Context, op string, err error) {
	if s.Log != nil {
		s.Log.Warn("cart store degraded, using fallback", "op", op, "err", err)
	}
}
