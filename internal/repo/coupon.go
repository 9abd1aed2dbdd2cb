package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// LockCouponByCode reads the coupon row FOR UPDATE.
func (r *GormRepo) LockCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var items []models.Coupon
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ToggleCoupon(ctx context.Context, id uint) (*models.Coupon, error) {
	res := r.DB.WithContext(ctx).Model(&models.Coupon{}).Where("id = ?", id).
		Update("active", gorm.Expr("NOT active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var c models.Coupon
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementCouponUsage bumps the counter only while it is below the cap.
func (r *GormRepo) IncrementCouponUsage(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND usage_count < usage_cap", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
