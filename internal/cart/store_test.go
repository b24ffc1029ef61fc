package cart

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetEmpty(t *testing.T) {
	s := NewMemoryStore()

	c, err := s.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestMemoryStore_SaveIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	orig := Cart{"espresso-beans": 2}
	require.NoError(t, s.Save(ctx, "sess-1", orig))

	// mutations of the caller's copy must not leak into the store
	orig["espresso-beans"] = 99
	got, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got["espresso-beans"])

	got["latte-mix"] = 1
	again, _ := s.Get(ctx, "sess-1")
	_, present := again["latte-mix"]
	assert.False(t, present)
}

func TestMemoryStore_ClearIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", Cart{"latte-mix": 1}))
	require.NoError(t, s.Clear(ctx, "sess-1"))
	require.NoError(t, s.Clear(ctx, "sess-1"))

	c, _ := s.Get(ctx, "sess-1")
	assert.Empty(t, c)
}

// failingStore simulates an unreachable fast tier.
type failingStore struct{}

var errStoreDown = errors.New("store unreachable")

func (failingStore) Get(context.Context, string) (Cart, error) { return nil, errStoreDown }
func (failingStore) Save(context.Context, string, Cart) error  { return errStoreDown }
func (failingStore) Clear(context.Context, string) error       { return errStoreDown }

func TestFallbackStore_DegradesToSecondary(t *testing.T) {
	secondary := NewMemoryStore()
	s := &FallbackStore{Primary: failingStore{}, Secondary: secondary, Log: slog.Default()}
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", Cart{"espresso-beans": 1}))

	c, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, Cart{"espresso-beans": 1}, c)
}

func TestFallbackStore_PrefersPrimary(t *testing.T) {
	primary := NewMemoryStore()
	secondary := NewMemoryStore()
	s := &FallbackStore{Primary: primary, Secondary: secondary, Log: slog.Default()}
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", Cart{"latte-mix": 2}))

	got, _ := primary.Get(ctx, "sess-1")
	assert.Equal(t, Cart{"latte-mix": 2}, got)
	fromSecondary, _ := secondary.Get(ctx, "sess-1")
	assert.Empty(t, fromSecondary)
}

func TestFallbackStore_ClearClearsBothTiers(t *testing.T) {
	primary := NewMemoryStore()
	secondary := NewMemoryStore()
	s := &FallbackStore{Primary: primary, Secondary: secondary, Log: slog.Default()}
	ctx := context.Background()

	// cart may live in either tier after a degradation window
	require.NoError(t, primary.Save(ctx, "sess-1", Cart{"espresso-beans": 1}))
	require.NoError(t, secondary.Save(ctx, "sess-1", Cart{"espresso-beans": 1}))

	require.NoError(t, s.Clear(ctx, "sess-1"))

	p, _ := primary.Get(ctx, "sess-1")
	sec, _ := secondary.Get(ctx, "sess-1")
	assert.Empty(t, p)
	assert.Empty(t, sec)
}
