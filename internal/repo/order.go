package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

// CreateOrder inserts the order with its items inside a savepoint, so a
// duplicate order number leaves the surrounding transaction usable.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	q := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := q().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q().Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) ListAllOrders(ctx context.Context, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	q := func() *gorm.DB {
		tx := r.DB.WithContext(ctx).Model(&models.Order{})
		if status != "" {
			tx = tx.Where("status = ?", status)
		}
		return tx
	}

	var total int64
	if err := q().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q().Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}

// LockOrder reads the order row FOR UPDATE without its items.
func (r *GormRepo) LockOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
