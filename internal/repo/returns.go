package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) CreateReturn(ctx context.Context, ret *models.Return) error {
	return r.DB.WithContext(ctx).Create(ret).Error
}

func (r *GormRepo) GetReturn(ctx context.Context, id uint) (*models.Return, error) {
	var ret models.Return
	if err := r.DB.WithContext(ctx).Preload("Order").First(&ret, id).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *GormRepo) SaveReturn(ctx context.Context, ret *models.Return) error {
	return r.DB.WithContext(ctx).Omit("Order").Save(ret).Error
}

func (r *GormRepo) ListReturns(ctx context.Context, userID *uuid.UUID, status models.ReturnStatus) ([]models.Return, error) {
	q := r.DB.WithContext(ctx).Model(&models.Return{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []models.Return
	if err := q.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountOpenReturns(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Return{}).
		Where("order_id = ? AND status IN ?", orderID, []models.ReturnStatus{models.ReturnStatusPending, models.ReturnStatusApproved}).
		Count(&n).Error
	return n, err
}

