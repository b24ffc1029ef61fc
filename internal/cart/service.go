package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/roasthouse/checkout-api/internal/catalog"
)

var (
	ErrInvalidItem     = errors.New("invalid item")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrItemNotInCart   = errors.New("item not in cart")
)

// Catalog is the slice of the catalog reader the cart mutations need.
type Catalog interface {
	Summaries(ctx context.Context) (map[string]catalog.Summary, error)
}

// Service applies add/remove mutations, validating slugs against the
// catalog's current listing. Existence is the only check here; an item that
// is temporarily out of stock may still be carted.
type Service struct {
	Store   Store
	Catalog Catalog
}

// AddItem increments the cart entry for slug and persists the cart. The
// returned summaries cover the whole catalog so the caller can render
// without another round trip.
func (s *Service) AddItem(ctx context.Context, sessionID, slug string, qty int) (Cart, map[string]catalog.Summary, error) {
	if qty < 1 {
		return nil, nil, ErrInvalidQuantity
	}
	summaries, err := s.Catalog.Summaries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if _, ok := summaries[slug]; !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidItem, slug)
	}

	c, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cart: %w", err)
	}
	c.Add(slug, qty)
	if err := s.Store.Save(ctx, sessionID, c); err != nil {
		return nil, nil, fmt.Errorf("save cart: %w", err)
	}
	return c, summaries, nil
}

// RemoveItem decrements the cart entry for slug, deleting it when the
// removal covers the held quantity, and persists the cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, slug string, qty int) (Cart, map[string]catalog.Summary, error) {
	if qty < 1 {
		return nil, nil, ErrInvalidQuantity
	}
	summaries, err := s.Catalog.Summaries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if _, ok := summaries[slug]; !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidItem, slug)
	}

	c, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cart: %w", err)
	}
	if _, ok := c[slug]; !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrItemNotInCart, slug)
	}
	c.Remove(slug, qty)
	if err := s.Store.Save(ctx, sessionID, c); err != nil {
		return nil, nil, fmt.Errorf("save cart: %w", err)
	}
	return c, summaries, nil
}
