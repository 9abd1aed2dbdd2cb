package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

// AddToCompare is idempotent on (user, product).
func (r *GormRepo) AddToCompare(ctx context.Context, userID uuid.UUID, productID uint) error {
	item := models.CompareItem{UserID: userID, ProductID: productID}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}}, DoNothing: true}).
		Create(&item).Error
}

func (r *GormRepo) InCompare(ctx context.Context, userID uuid.UUID, productID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.CompareItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) CountCompare(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.CompareItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *GormRepo) RemoveFromCompare(ctx context.Context, userID uuid.UUID, productID uint) error {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CompareItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCompare(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CompareItem{}).Error
}

func (r *GormRepo) GetCompare(ctx context.Context, userID uuid.UUID) ([]models.CompareItem, error) {
	var items []models.CompareItem
	if err := r.DB.WithContext(ctx).
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
