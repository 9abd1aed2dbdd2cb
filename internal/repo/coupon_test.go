package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
)

func TestIncrementCouponUsage_StopsAtCap(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	c := storetest.Coupon(t, r, models.Coupon{Code: "ONCE", Percentage: 10, Active: true, UsageCap: 1})

	ok, err := r.IncrementCouponUsage(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IncrementCouponUsage(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := r.GetCouponByCode(ctx, "ONCE")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}
