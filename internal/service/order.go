package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *OrderService) History(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

// Detail hides orders of other users behind ErrNotFound.
func (s *OrderService) Detail(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	st := models.OrderStatus(status)
	if st != "" && !st.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListAllOrders(ctx, st, offset, limit)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, st)
	if err != nil {
		return nil, notFound(err, "order")
	}

	publish(ctx, s.Events, events.TopicOrders, key(order.ID), "order_status_changed", map[string]any{
		"order_id": order.ID,
		"number":   order.Number,
		"status":   string(order.Status),
	})
	return order, nil
}
