package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

// AddToWishlist is idempotent on (user, product).
func (r *GormRepo) AddToWishlist(ctx context.Context, userID uuid.UUID, productID uint) error {
	item := models.WishlistItem{UserID: userID, ProductID: productID}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}}, DoNothing: true}).
		Create(&item).Error
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, productID uint) error {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetWishlist(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) InWishlist(ctx context.Context, userID uuid.UUID, productID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	return n > 0, err
}
