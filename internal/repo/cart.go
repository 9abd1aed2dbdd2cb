package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCartLine(ctx context.Context, userID uuid.UUID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToCart increments an existing (user, product) line or creates it.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(item).Error
		}

		return tx.Create(item).Error
	})
}

func (r *GormRepo) SetCartQuantity(ctx context.Context, userID uuid.UUID, productID uint, qty int) (*models.CartItem, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetCartLine(ctx, userID, productID)
}

// DeleteOneFromCart lowers the line quantity by one and drops the line when
// it reaches zero. deleted reports the latter.
func (r *GormRepo) DeleteOneFromCart(ctx context.Context, productID uint, userID uuid.UUID) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("product_id = ? AND user_id = ?", productID, userID).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			return tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&item).Error
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	}); err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID uuid.UUID, productID uint) error {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteAllFromCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
