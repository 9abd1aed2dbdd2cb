package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) CreateRestockRequest(ctx context.Context, req *models.RestockRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *GormRepo) GetRestockRequest(ctx context.Context, id uint) (*models.RestockRequest, error) {
	var req models.RestockRequest
	if err := r.DB.WithContext(ctx).Preload("Product").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepo) ListRestockRequests(ctx context.Context, userID *uuid.UUID, status models.RestockStatus) ([]models.RestockRequest, error) {
	q := r.DB.WithContext(ctx).Model(&models.RestockRequest{}).Preload("Product")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []models.RestockRequest
	if err := q.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CompleteRestockRequest moves a pending request to completed. It reports
// false when the request is missing or no longer pending.
func (r *GormRepo) CompleteRestockRequest(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.RestockRequest{}).
		Where("id = ? AND status = ?", id, models.RestockStatusPending).
		Updates(map[string]any{"status": models.RestockStatusCompleted, "completed_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementStock adds qty to the current stock in one statement.
func (r *GormRepo) IncrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
