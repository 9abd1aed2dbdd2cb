package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
)

func TestCompareService(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &CompareService{Repo: r}
	user := uuid.New()

	ids := make([]uint, MaxCompareItems+1)
	for i := range ids {
		ids[i] = storetest.Product(t, r, fmt.Sprintf("CPU %d", i), "199.00", 1).ID
	}

	for _, id := range ids[:MaxCompareItems] {
		require.NoError(t, svc.Add(ctx, user, id))
	}
	require.NoError(t, svc.Add(ctx, user, ids[0]))
	require.ErrorIs(t, svc.Add(ctx, user, ids[MaxCompareItems]), ErrConflict)
	require.ErrorIs(t, svc.Add(ctx, user, 999), ErrNotFound)

	items, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, MaxCompareItems)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "CPU 0", items[0].Product.Name)

	require.NoError(t, svc.Remove(ctx, user, ids[0]))
	require.ErrorIs(t, svc.Remove(ctx, user, ids[0]), ErrNotFound)
	require.NoError(t, svc.Add(ctx, user, ids[MaxCompareItems]))

	require.NoError(t, svc.Clear(ctx, user))
	items, err = svc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, items)
}
