package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikur-24/daily-fit-server/internal/validator"
)

func TestCartService_ListCart(t *testing.T) {
	repo := newMemRepository()
	svc := NewCartService(repo, testLogger(), validator.New())
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "a@fit.io", &AddToCartRequest{ClassID: "c1", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	t.Run("Requester other than target is forbidden", func(t *testing.T) {
		pairs := [][2]string{
			{"a@fit.io", "b@fit.io"},
			{"b@fit.io", "a@fit.io"},
			{"a@fit.io", "A@fit.io"},
		}
		for _, p := range pairs {
			before := repo.lookups
			_, err := svc.ListCart(ctx, p[0], p[1])
			assert.ErrorIs(t, err, ErrForbidden, p)
			assert.Equal(t, before, repo.lookups, "store must not be read for %v", p)
		}
	})

	t.Run("Empty target yields empty list", func(t *testing.T) {
		items, err := svc.ListCart(ctx, "a@fit.io", "")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Own cart is listed", func(t *testing.T) {
		items, err := svc.ListCart(ctx, "a@fit.io", "a@fit.io")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "c1", items[0].ClassID)
	})
}

func TestCartService_AddToCart(t *testing.T) {
	repo := newMemRepository()
	svc := NewCartService(repo, testLogger(), validator.New())
	ctx := context.Background()

	t.Run("Same class can be added twice", func(t *testing.T) {
		req := &AddToCartRequest{ClassID: "c1", Name: "HIIT", Price: decimal.RequireFromString("49.99")}
		_, err := svc.AddToCart(ctx, "a@fit.io", req)
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@fit.io", req)
		require.NoError(t, err)

		items, err := svc.ListCart(ctx, "a@fit.io", "a@fit.io")
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.True(t, items[0].Price.Equal(decimal.RequireFromString("49.99")))
	})

	t.Run("Explicit foreign email is forbidden", func(t *testing.T) {
		_, err := svc.AddToCart(ctx, "a@fit.io", &AddToCartRequest{Email: "b@fit.io", ClassID: "c1"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Class reference is required", func(t *testing.T) {
		_, err := svc.AddToCart(ctx, "a@fit.io", &AddToCartRequest{})
		assert.True(t, IsValidationError(err))
	})
}

func TestCartService_RemoveFromCart(t *testing.T) {
	repo := newMemRepository()
	svc := NewCartService(repo, testLogger(), validator.New())
	ctx := context.Background()

	res, err := svc.AddToCart(ctx, "a@fit.io", &AddToCartRequest{ClassID: "c1"})
	require.NoError(t, err)

	_, err = svc.RemoveFromCart(ctx, "b@fit.io", res.InsertedID)
	assert.ErrorIs(t, err, ErrForbidden)

	first, err := svc.RemoveFromCart(ctx, "a@fit.io", res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.DeletedCount)

	second, err := svc.RemoveFromCart(ctx, "a@fit.io", res.InsertedID)
	require.NoError(t, err)
	assert.True(t, second.Acknowledged)
	assert.Equal(t, int64(0), second.DeletedCount)
}
