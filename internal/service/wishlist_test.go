package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
)

func TestWishlistService(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &WishlistService{Repo: r}
	user := uuid.New()
	p := storetest.Product(t, r, "Drone", "250.00", 1)

	require.NoError(t, svc.Add(ctx, user, p.ID))
	require.NoError(t, svc.Add(ctx, user, p.ID))
	require.ErrorIs(t, svc.Add(ctx, user, 555), ErrNotFound)

	items, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Drone", items[0].Product.Name)

	require.NoError(t, svc.Remove(ctx, user, p.ID))
	require.ErrorIs(t, svc.Remove(ctx, user, p.ID), ErrNotFound)
}

func TestWishlistService_MoveToCart(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &WishlistService{Repo: r, Cart: &CartService{Repo: r}}
	user := uuid.New()
	drone := storetest.Product(t, r, "Drone", "250.00", 2)
	soldOut := storetest.Product(t, r, "Gimbal", "90.00", 0)

	_, err := svc.MoveToCart(ctx, user, drone.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Add(ctx, user, drone.ID))
	require.NoError(t, svc.Add(ctx, user, soldOut.ID))
	storetest.AddToCart(t, r, user, drone.ID, 1)

	item, err := svc.MoveToCart(ctx, user, drone.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	var stockErr *InsufficientStockError
	_, err = svc.MoveToCart(ctx, user, soldOut.ID)
	require.ErrorAs(t, err, &stockErr)

	items, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, soldOut.ID, items[0].ProductID)
}

func TestSupplierService(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &SupplierService{Repo: r}

	_, err := svc.Create(ctx, transport.CreateSupplierRequest{Name: " "})
	require.ErrorIs(t, err, ErrValidation)

	s, err := svc.Create(ctx, transport.CreateSupplierRequest{Name: "Acme", Email: "sales@acme.test"})
	require.NoError(t, err)
	assert.True(t, s.Active)

	s, err = svc.Toggle(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, s.Active)

	_, err = svc.Toggle(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
