package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var items []models.Supplier
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) ToggleSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	res := r.DB.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", id).
		Update("active", gorm.Expr("NOT active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetSupplier(ctx, id)
}
