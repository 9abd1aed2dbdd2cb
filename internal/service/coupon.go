package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

const dateLayout = "2006-01-02"

// Evaluation is the priced outcome of a coupon against a subtotal.
type Evaluation struct {
	Coupon   *models.Coupon
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func (e *Evaluation) Quote() *transport.CouponQuote {
	return &transport.CouponQuote{
		Code:       e.Coupon.Code,
		Percentage: e.Coupon.Percentage,
		Subtotal:   e.Subtotal,
		Discount:   e.Discount,
		Total:      e.Total,
	}
}

type CouponService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Now    func() time.Time
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *CouponService) today() time.Time {
	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}
	return dateOf(now())
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// evaluate applies the validity checks in order and prices the discount.
// It never touches the usage counter.
func evaluate(c *models.Coupon, subtotal decimal.Decimal, today time.Time) (*Evaluation, error) {
	switch {
	case !c.Active:
		return nil, ErrCouponInactive
	case today.After(dateOf(c.ExpiresOn)):
		return nil, ErrCouponExpired
	case c.UsageCount >= c.UsageCap:
		return nil, ErrCouponExhausted
	case subtotal.LessThan(c.MinPurchase):
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinimum, c.MinPurchase.StringFixed(money.Places))
	}

	discount := money.Percent(subtotal, c.Percentage)
	if c.MaxDiscount.Valid && discount.GreaterThan(c.MaxDiscount.Decimal) {
		discount = c.MaxDiscount.Decimal
	}
	discount = money.Round(discount)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return &Evaluation{
		Coupon:   c,
		Subtotal: subtotal,
		Discount: discount,
		Total:    money.FloorZero(subtotal.Sub(discount)),
	}, nil
}

func (s *CouponService) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal) (*Evaluation, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	c, err := s.Repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return evaluate(c, subtotal, s.today())
}

// Apply prices the coupon against the user's current cart. Storing the code
// in the session is left to the caller.
func (s *CouponService) Apply(ctx context.Context, userID uuid.UUID, code string) (*Evaluation, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, it := range items {
		if it.Product != nil {
			subtotal = subtotal.Add(money.LineTotal(it.Product.Price, it.Quantity))
		}
	}
	return s.Evaluate(ctx, code, money.Round(subtotal))
}

func (s *CouponService) Create(ctx context.Context, req transport.CreateCouponRequest) (*models.Coupon, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if req.Percentage < 1 || req.Percentage > 100 {
		return nil, fmt.Errorf("%w: percentage must be between 1 and 100", ErrValidation)
	}
	if req.UsageCap < 1 {
		return nil, fmt.Errorf("%w: usage_cap must be >= 1", ErrValidation)
	}
	if req.MinPurchase.IsNegative() {
		return nil, fmt.Errorf("%w: min_purchase must be >= 0", ErrValidation)
	}
	var maxDiscount decimal.NullDecimal
	if req.MaxDiscount != nil {
		if !req.MaxDiscount.IsPositive() {
			return nil, fmt.Errorf("%w: max_discount must be > 0", ErrValidation)
		}
		maxDiscount = decimal.NewNullDecimal(money.Round(*req.MaxDiscount))
	}
	expires, err := time.Parse(dateLayout, strings.TrimSpace(req.ExpiresOn))
	if err != nil {
		return nil, fmt.Errorf("%w: expires_on must be YYYY-MM-DD", ErrValidation)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	c := &models.Coupon{
		Code:        code,
		Percentage:  req.Percentage,
		MaxDiscount: maxDiscount,
		MinPurchase: money.Round(req.MinPurchase),
		Active:      active,
		ExpiresOn:   expires,
		UsageCap:    req.UsageCap,
	}
	if err := s.Repo.CreateCoupon(ctx, c); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: coupon %s already exists", ErrConflict, code)
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCoupons, c.Code, "coupon_created", map[string]any{
		"coupon_id":  c.ID,
		"code":       c.Code,
		"percentage": c.Percentage,
	})
	return c, nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	return s.Repo.ListCoupons(ctx)
}

func (s *CouponService) Toggle(ctx context.Context, id uint) (*models.Coupon, error) {
	c, err := s.Repo.ToggleCoupon(ctx, id)
	if err != nil {
		return nil, notFound(err, "coupon")
	}
	publish(ctx, s.Events, events.TopicCoupons, c.Code, "coupon_toggled", map[string]any{
		"coupon_id": c.ID,
		"code":      c.Code,
		"active":    c.Active,
	})
	return c, nil
}
