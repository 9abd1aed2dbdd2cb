package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
)

func TestPatchProduct_KeepsConcurrentStockChange(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	p := storetest.Product(t, r, "Monitor", "150.00", 5)

	// three units sell while the patch is in flight
	storetest.BeforeUpdate(t, r, "products", func(tx *gorm.DB) {
		require.NoError(t, tx.Exec("UPDATE products SET stock = stock - 3 WHERE id = ?", p.ID).Error)
	})

	price := storetest.Dec("140.00")
	got, err := r.PatchProduct(ctx, transport.PatchProductRequest{Price: &price}, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(price))
	assert.Equal(t, 2, got.Stock)

	stored, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
	assert.Equal(t, "Monitor", stored.Name)
}

func TestPatchProduct_Missing(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	name := "Ghost"

	_, err := r.PatchProduct(context.Background(), transport.PatchProductRequest{Name: &name}, 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = r.PatchProduct(context.Background(), transport.PatchProductRequest{}, 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDecrementStock(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	p := storetest.Product(t, r, "SSD", "90.00", 2)

	ok, err := r.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	stored, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	ok, err = r.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	stored, err = r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)

	ok, err = r.DecrementStock(ctx, 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
