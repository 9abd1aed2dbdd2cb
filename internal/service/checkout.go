package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

const (
	orderNumberPrefix      = "BF"
	maxOrderNumberAttempts = 10
)

var orderNumberSpace = big.NewInt(100_000_000)

// NewOrderNumber returns "BF" followed by eight random digits.
func NewOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, orderNumberSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%08d", orderNumberPrefix, n.Int64()), nil
}

type CheckoutInput struct {
	RecipientName string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	Notes         string
	// CouponCode is the code from the request, or else the one kept in the
	// session. Empty means no coupon.
	CouponCode string
}

func (in CheckoutInput) validate() error {
	required := []struct{ name, value string }{
		{"recipient_name", in.RecipientName},
		{"phone", in.Phone},
		{"address", in.Address},
		{"city", in.City},
	}
	for _, f := range required {
		if blank(f.value) {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}

type CheckoutService struct {
	Repo    *repo.GormRepo
	Coupons *CouponService
	Events  events.Publisher
	// OrderNumber generates candidate numbers. Defaults to NewOrderNumber.
	OrderNumber func() (string, error)
}

// Checkout turns the user's cart into an order. Stock, the coupon counter,
// the order and the cart change in one transaction or not at all.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		lines, err := tx.GetCart(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		if err := in.validate(); err != nil {
			return err
		}

		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
		ids := make([]uint, len(lines))
		for i, line := range lines {
			ids[i] = line.ProductID
		}

		locked, err := tx.LockProducts(ctx, ids)
		if err != nil {
			return err
		}
		products := make(map[uint]models.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}

		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			p, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
			}
			if !p.Available {
				return fmt.Errorf("%w: product %q is not available", ErrConflict, p.Name)
			}
			if line.Quantity > p.Stock {
				return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: line.Quantity, Available: p.Stock}
			}

			lineTotal := money.LineTotal(p.Price, line.Quantity)
			subtotal = subtotal.Add(lineTotal)
			productID := p.ID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    line.Quantity,
				LineTotal:   lineTotal,
			})
		}
		subtotal = money.Round(subtotal)

		coupon, discount, err := s.price(ctx, tx, in.CouponCode, subtotal)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:        userID,
			Status:        models.OrderStatusPending,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         money.FloorZero(subtotal.Sub(discount)),
			RecipientName: strings.TrimSpace(in.RecipientName),
			Phone:         strings.TrimSpace(in.Phone),
			Address:       strings.TrimSpace(in.Address),
			City:          strings.TrimSpace(in.City),
			PostalCode:    strings.TrimSpace(in.PostalCode),
			Notes:         in.Notes,
			Items:         items,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
			order.CouponCode = coupon.Code
		}

		if err := s.persist(ctx, tx, order); err != nil {
			return err
		}

		for _, line := range lines {
			ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				p := products[line.ProductID]
				return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: line.Quantity, Available: p.Stock}
			}
		}

		if coupon != nil {
			ok, err := tx.IncrementCouponUsage(ctx, coupon.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCouponUsageRace
			}
		}

		_, err = tx.DeleteAllFromCart(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_id", order.ID, "number", order.Number, "total", order.Total.StringFixed(money.Places))
	publish(ctx, s.Events, events.TopicOrders, key(order.ID), "order_created", map[string]any{
		"order_id": order.ID,
		"number":   order.Number,
		"user_id":  userID.String(),
		"subtotal": order.Subtotal.StringFixed(money.Places),
		"discount": order.Discount.StringFixed(money.Places),
		"total":    order.Total.StringFixed(money.Places),
		"coupon":   order.CouponCode,
		"items":    len(order.Items),
	})
	return order, nil
}

// price evaluates the coupon against the locked row. An invalid coupon does
// not fail the checkout: the order is priced without a discount.
func (s *CheckoutService) price(ctx context.Context, tx *repo.GormRepo, code string, subtotal decimal.Decimal) (*models.Coupon, decimal.Decimal, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, decimal.Zero, nil
	}

	var ev *Evaluation
	c, err := tx.LockCouponByCode(ctx, code)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = ErrCouponNotFound
	case err != nil:
		return nil, decimal.Zero, err
	default:
		ev, err = evaluate(c, subtotal, s.Coupons.today())
	}
	if err != nil {
		if !errors.Is(err, ErrInvalidCoupon) {
			return nil, decimal.Zero, err
		}
		logging.FromContext(ctx).Info("coupon_ignored", "svc", "checkout", "code", code, "reason", err.Error())
		return nil, decimal.Zero, nil
	}
	return ev.Coupon, ev.Discount, nil
}

func (s *CheckoutService) persist(ctx context.Context, tx *repo.GormRepo, order *models.Order) error {
	gen := s.OrderNumber
	if gen == nil {
		gen = NewOrderNumber
	}

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := gen()
		if err != nil {
			return err
		}
		order.ID = 0
		order.Number = number
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}

		_, err = tx.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}
		if !pkgdb.IsUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("%w: no free order number after %d attempts", ErrIntegrity, maxOrderNumberAttempts)
}
