package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

type ReturnService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Now    func() time.Time
}

func (s *ReturnService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// FileReturn opens a pending return for a delivered order owned by userID.
// The order row stays locked until the return is stored, so at most one
// open return exists per order. Stock and money are untouched until staff
// act on it.
func (s *ReturnService) FileReturn(ctx context.Context, orderID uint, userID uuid.UUID, reason, description string) (*models.Return, error) {
	var ret *models.Return
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return notFound(err, "order")
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: order belongs to another customer", ErrForbidden)
		}
		if order.Status != models.OrderStatusDelivered {
			return fmt.Errorf("%w: only delivered orders can be returned, order is %s", ErrConflict, order.Status)
		}
		r := models.ReturnReason(reason)
		if !r.Valid() {
			return fmt.Errorf("%w: unknown reason %q", ErrValidation, reason)
		}

		open, err := tx.CountOpenReturns(ctx, orderID)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: order already has an open return", ErrConflict)
		}

		ret = &models.Return{
			OrderID:     order.ID,
			UserID:      userID,
			Reason:      r,
			Description: description,
			Status:      models.ReturnStatusPending,
		}
		return tx.CreateReturn(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, key(ret.OrderID), "return_filed", map[string]any{
		"return_id": ret.ID,
		"order_id":  ret.OrderID,
		"reason":    string(ret.Reason),
	})
	return ret, nil
}

// ResolveReturn lets staff set any status. A refund, when given, must lie
// within [0, order total].
func (s *ReturnService) ResolveReturn(ctx context.Context, returnID uint, status string, refund *decimal.Decimal, response string) (*models.Return, error) {
	st := models.ReturnStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	ret, err := s.Repo.GetReturn(ctx, returnID)
	if err != nil {
		return nil, notFound(err, "return")
	}

	if refund != nil {
		amount := money.Round(*refund)
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: refund must be >= 0", ErrValidation)
		}
		if ret.Order != nil && amount.GreaterThan(ret.Order.Total) {
			return nil, fmt.Errorf("%w: refund exceeds order total %s", ErrValidation, ret.Order.Total.StringFixed(money.Places))
		}
		ret.RefundAmount = decimal.NewNullDecimal(amount)
	}

	ret.Status = st
	ret.StaffResponse = response
	if st == models.ReturnStatusPending {
		ret.ResolvedAt = nil
	} else {
		now := s.now()
		ret.ResolvedAt = &now
	}

	if err := s.Repo.SaveReturn(ctx, ret); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, key(ret.OrderID), "return_resolved", map[string]any{
		"return_id": ret.ID,
		"order_id":  ret.OrderID,
		"status":    string(ret.Status),
	})
	return ret, nil
}

func (s *ReturnService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Return, error) {
	return s.Repo.ListReturns(ctx, &userID, "")
}

func (s *ReturnService) ListAll(ctx context.Context, status string) ([]models.Return, error) {
	st := models.ReturnStatus(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListReturns(ctx, nil, st)
}
