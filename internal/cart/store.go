package cart

import "context"

// Store holds one cart per session identifier.
type Store interface {
	// Get returns the session's cart, or an empty cart if none exists.
	Get(ctx context.Context, sessionID string) (Cart, error)
	// Save replaces the stored cart and resets its expiry.
	Save(ctx context.Context, sessionID string, c Cart) error
	// Clear removes the cart entirely; clearing an absent cart is not an error.
	Clear(ctx context.Context, sessionID string) error
}
