package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

type OrderCount struct {
	UserID uuid.UUID
	Orders int64
}

func (r *GormRepo) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) OrderCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []OrderCount
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("user_id, COUNT(*) AS orders").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Orders
	}
	return out, nil
}
