package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

var dec = storetest.Dec

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2))
}

func fixedNow(day string) func() time.Time {
	d, _ := time.Parse(dateLayout, day)
	return func() time.Time { return d.Add(15 * time.Hour) }
}

func TestEvaluate_Pricing(t *testing.T) {
	t.Parallel()

	today := dateOf(time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	expires := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pct      int
		max      *string
		min      string
		subtotal string
		discount string
		total    string
	}{
		{name: "percentage", pct: 20, min: "50.00", subtotal: "120.00", discount: "24.00", total: "96.00"},
		{name: "minimum is inclusive", pct: 10, min: "50.00", subtotal: "50.00", discount: "5.00", total: "45.00"},
		{name: "capped by max discount", pct: 50, max: ptr("30.00"), min: "0", subtotal: "200.00", discount: "30.00", total: "170.00"},
		{name: "max above raw", pct: 10, max: ptr("30.00"), min: "0", subtotal: "100.00", discount: "10.00", total: "90.00"},
		{name: "rounds half up", pct: 15, min: "0", subtotal: "0.10", discount: "0.02", total: "0.08"},
		{name: "full discount", pct: 100, min: "0", subtotal: "19.99", discount: "19.99", total: "0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &models.Coupon{
				Code:        "CODE",
				Percentage:  tt.pct,
				MinPurchase: dec(tt.min),
				Active:      true,
				ExpiresOn:   expires,
				UsageCap:    10,
			}
			if tt.max != nil {
				c.MaxDiscount = decimal.NewNullDecimal(dec(*tt.max))
			}

			ev, err := evaluate(c, dec(tt.subtotal), today)
			require.NoError(t, err)
			assertMoney(t, tt.discount, ev.Discount)
			assertMoney(t, tt.total, ev.Total)
			assert.True(t, ev.Discount.LessThanOrEqual(ev.Subtotal))
			assert.Equal(t, 0, c.UsageCount)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestEvaluate_Rejections(t *testing.T) {
	t.Parallel()

	today := dateOf(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	valid := func() *models.Coupon {
		return &models.Coupon{
			Code:        "SAVE20",
			Percentage:  20,
			MinPurchase: dec("50.00"),
			Active:      true,
			ExpiresOn:   today,
			UsageCap:    5,
		}
	}

	tests := []struct {
		name     string
		mutate   func(c *models.Coupon)
		subtotal string
		want     error
	}{
		{name: "inactive", mutate: func(c *models.Coupon) { c.Active = false }, subtotal: "120", want: ErrCouponInactive},
		{name: "expired", mutate: func(c *models.Coupon) { c.ExpiresOn = today.AddDate(0, 0, -1) }, subtotal: "120", want: ErrCouponExpired},
		{name: "exhausted", mutate: func(c *models.Coupon) { c.UsageCount = 5 }, subtotal: "120", want: ErrCouponExhausted},
		{name: "below minimum", mutate: func(*models.Coupon) {}, subtotal: "30.00", want: ErrBelowMinimum},
		{name: "inactive wins over expired", mutate: func(c *models.Coupon) {
			c.Active = false
			c.ExpiresOn = today.AddDate(-1, 0, 0)
		}, subtotal: "120", want: ErrCouponInactive},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(c)
			_, err := evaluate(c, dec(tt.subtotal), today)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, ErrInvalidCoupon)
		})
	}

	t.Run("expiry day is still valid", func(t *testing.T) {
		_, err := evaluate(valid(), dec("120"), today)
		require.NoError(t, err)
	})
}

func TestCouponService_Evaluate(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	storetest.Coupon(t, r, models.Coupon{
		Code:        "SAVE20",
		Percentage:  20,
		MinPurchase: dec("50.00"),
		Active:      true,
		ExpiresOn:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	svc := &CouponService{Repo: r, Now: fixedNow("2026-10-17")}

	ev, err := svc.Evaluate(ctx, "  save20 ", dec("120.00"))
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", ev.Coupon.Code)
	assertMoney(t, "24.00", ev.Discount)
	assertMoney(t, "96.00", ev.Total)

	_, err = svc.Evaluate(ctx, "SAVE20", dec("30.00"))
	require.ErrorIs(t, err, ErrBelowMinimum)

	_, err = svc.Evaluate(ctx, "NOPE", dec("120.00"))
	require.ErrorIs(t, err, ErrCouponNotFound)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	stored, err := r.GetCouponByCode(ctx, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UsageCount)
}

func TestCouponService_Apply(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	storetest.Coupon(t, r, models.Coupon{Code: "TEN", Percentage: 10, MinPurchase: dec("0"), Active: true})
	svc := &CouponService{Repo: r}
	user := uuid.New()

	_, err := svc.Apply(ctx, user, "TEN")
	require.ErrorIs(t, err, ErrEmptyCart)

	p := storetest.Product(t, r, "Mouse", "25.50", 10)
	storetest.AddToCart(t, r, user, p.ID, 2)

	ev, err := svc.Apply(ctx, user, "ten")
	require.NoError(t, err)
	assertMoney(t, "51.00", ev.Subtotal)
	assertMoney(t, "5.10", ev.Discount)
	assertMoney(t, "45.90", ev.Quote().Total)
}

func TestCouponService_Create(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	rec := &events.Recorder{}
	svc := &CouponService{Repo: r, Events: rec}

	base := transport.CreateCouponRequest{
		Code:        " spring ",
		Percentage:  15,
		MinPurchase: dec("10"),
		ExpiresOn:   "2026-12-31",
		UsageCap:    3,
	}

	c, err := svc.Create(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, "SPRING", c.Code)
	assert.True(t, c.Active)
	assert.False(t, c.MaxDiscount.Valid)
	assert.Equal(t, []string{"coupon_created"}, rec.Types(events.TopicCoupons))

	_, err = svc.Create(ctx, base)
	require.ErrorIs(t, err, ErrConflict)

	invalid := []func(req *transport.CreateCouponRequest){
		func(req *transport.CreateCouponRequest) { req.Code = " " },
		func(req *transport.CreateCouponRequest) { req.Percentage = 0 },
		func(req *transport.CreateCouponRequest) { req.Percentage = 101 },
		func(req *transport.CreateCouponRequest) { req.UsageCap = 0 },
		func(req *transport.CreateCouponRequest) { req.MinPurchase = dec("-1") },
		func(req *transport.CreateCouponRequest) { req.MaxDiscount = ptr(dec("0")) },
		func(req *transport.CreateCouponRequest) { req.ExpiresOn = "31/12/2026" },
	}
	for i, mutate := range invalid {
		req := base
		req.Code = "OTHER"
		mutate(&req)
		_, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrValidation, "case %d", i)
	}
}

func TestCouponService_Toggle(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	c := storetest.Coupon(t, r, models.Coupon{Code: "FLIP", Percentage: 5, Active: true})
	svc := &CouponService{Repo: r}

	got, err := svc.Toggle(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	got, err = svc.Toggle(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	_, err = svc.Toggle(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
