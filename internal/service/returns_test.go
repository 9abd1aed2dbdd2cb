package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

func TestReturnService_FileReturn(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	rec := &events.Recorder{}
	svc := &ReturnService{Repo: r, Events: rec}
	owner := uuid.New()

	delivered := storetest.Order(t, r, owner, "BF10000001", "80.00", models.OrderStatusDelivered)
	shipped := storetest.Order(t, r, owner, "BF10000002", "80.00", models.OrderStatusShipped)

	_, err := svc.FileReturn(ctx, 9999, owner, "damaged", "")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FileReturn(ctx, delivered.ID, uuid.New(), "damaged", "")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.FileReturn(ctx, shipped.ID, owner, "damaged", "")
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.FileReturn(ctx, delivered.ID, owner, "bored", "")
	require.ErrorIs(t, err, ErrValidation)

	ret, err := svc.FileReturn(ctx, delivered.ID, owner, "wrong_item", "sent the blue one")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnStatusPending, ret.Status)
	assert.Equal(t, models.ReasonWrongItem, ret.Reason)
	assert.False(t, ret.RefundAmount.Valid)
	assert.Nil(t, ret.ResolvedAt)

	_, err = svc.FileReturn(ctx, delivered.ID, owner, "damaged", "again")
	require.ErrorIs(t, err, ErrConflict)

	mine, err := svc.ListForUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.Equal(t, []string{"return_filed"}, rec.Types(events.TopicOrders))
}

func TestReturnService_ResolveReturn(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	svc := &ReturnService{Repo: r, Now: func() time.Time { return now }}
	owner := uuid.New()
	order := storetest.Order(t, r, owner, "BF20000001", "50.00", models.OrderStatusDelivered)

	ret, err := svc.FileReturn(ctx, order.ID, owner, "damaged", "cracked")
	require.NoError(t, err)

	_, err = svc.ResolveReturn(ctx, ret.ID, "lost", nil, "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ResolveReturn(ctx, ret.ID, "approved", ptr(dec("50.01")), "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ResolveReturn(ctx, ret.ID, "approved", ptr(dec("-1")), "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ResolveReturn(ctx, 424242, "approved", nil, "")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := svc.ResolveReturn(ctx, ret.ID, "completed", ptr(dec("50.00")), "refunded in full")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnStatusCompleted, got.Status)
	require.True(t, got.RefundAmount.Valid)
	assertMoney(t, "50.00", got.RefundAmount.Decimal)
	require.NotNil(t, got.ResolvedAt)
	assert.WithinDuration(t, now, *got.ResolvedAt, time.Second)

	// manual transitions are unconstrained, including back to pending
	got, err = svc.ResolveReturn(ctx, ret.ID, "pending", nil, "reopened")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnStatusPending, got.Status)
	assert.Nil(t, got.ResolvedAt)

	stored, err := r.GetReturn(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, "reopened", stored.StaffResponse)
	assertMoney(t, "50.00", stored.RefundAmount.Decimal)

	all, err := svc.ListAll(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	_, err = svc.ListAll(ctx, "nope")
	require.ErrorIs(t, err, ErrValidation)
}

func TestReturnService_FileReturnConcurrent(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	rec := &events.Recorder{}
	svc := &ReturnService{Repo: r, Events: rec}
	owner := uuid.New()
	order := storetest.Order(t, r, owner, "BF00000077", "80.00", models.OrderStatusDelivered)

	const filers = 4
	var wg sync.WaitGroup
	errs := make([]error, filers)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.FileReturn(ctx, order.ID, owner, "damaged", "cracked screen")
		}(i)
	}
	wg.Wait()

	filed, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			filed++
		case errors.Is(err, ErrConflict):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, filed)
	assert.Equal(t, filers-1, rejected)

	var stored int64
	require.NoError(t, r.DB.Model(&models.Return{}).Where("order_id = ?", order.ID).Count(&stored).Error)
	assert.EqualValues(t, 1, stored)
	assert.Equal(t, []string{"return_filed"}, rec.Types(events.TopicOrders))
}
