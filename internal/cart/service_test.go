package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roasthouse/checkout-api/internal/catalog"
)

type stubCatalog struct {
	summaries map[string]catalog.Summary
	err       error
}

func (s *stubCatalog) Summaries(_ context.Context) (map[string]catalog.Summary, error) {
	return s.summaries, s.err
}

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	svc := &Service{
		Store: store,
		Catalog: &stubCatalog{summaries: map[string]catalog.Summary{
			"espresso-beans": {Name: "Espresso Beans", PriceCents: 1200},
			"latte-mix":      {Name: "Latte Mix", PriceCents: 900},
		}},
	}
	return svc, store
}

func TestAddItem(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, items, err := svc.AddItem(ctx, "sess-1", "espresso-beans", 2)
	require.NoError(t, err)
	assert.Equal(t, Cart{"espresso-beans": 2}, c)
	assert.Equal(t, int64(1200), items["espresso-beans"].PriceCents)

	// adding again increments the existing entry
	c, _, err = svc.AddItem(ctx, "sess-1", "espresso-beans", 1)
	require.NoError(t, err)
	assert.Equal(t, Cart{"espresso-beans": 3}, c)
}

func TestAddItem_UnknownSlug(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.AddItem(context.Background(), "sess-1", "ghost-item", 1)
	assert.ErrorIs(t, err, ErrInvalidItem)

	c, _ := store.Get(context.Background(), "sess-1")
	assert.Empty(t, c)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.AddItem(context.Background(), "sess-1", "espresso-beans", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = svc.AddItem(context.Background(), "sess-1", "espresso-beans", -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRemoveItem_RoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "sess-1", "espresso-beans", 2)
	require.NoError(t, err)
	_, _, err = svc.AddItem(ctx, "sess-1", "latte-mix", 1)
	require.NoError(t, err)

	// add then remove the same quantity restores the prior state
	_, _, err = svc.AddItem(ctx, "sess-1", "latte-mix", 4)
	require.NoError(t, err)
	c, _, err := svc.RemoveItem(ctx, "sess-1", "latte-mix", 4)
	require.NoError(t, err)
	assert.Equal(t, Cart{"espresso-beans": 2, "latte-mix": 1}, c)
}

func TestRemoveItem_DeletesEntryWhenExhausted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "sess-1", "espresso-beans", 2)
	require.NoError(t, err)

	// removing more than held deletes the entry, never goes negative
	c, _, err := svc.RemoveItem(ctx, "sess-1", "espresso-beans", 5)
	require.NoError(t, err)
	_, present := c["espresso-beans"]
	assert.False(t, present)
	for _, qty := range c {
		assert.Positive(t, qty)
	}
}

func TestRemoveItem_NotInCart(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.RemoveItem(context.Background(), "sess-1", "latte-mix", 1)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestRemoveItem_UnknownSlug(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.RemoveItem(context.Background(), "sess-1", "ghost-item", 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestAddItem_CatalogError(t *testing.T) {
	svc := &Service{
		Store:   NewMemoryStore(),
		Catalog: &stubCatalog{err: errors.New("catalog down")},
	}

	_, _, err := svc.AddItem(context.Background(), "sess-1", "espresso-beans", 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidItem)
}
