package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
)

type ProductFilter struct {
	CategoryID    *uint
	OnlyAvailable bool
}

func (f ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.OnlyAvailable {
		q = q.Where("available = ?", true)
	}
	return q
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).
		Preload("Category").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// ProductsByIDs returns the products in ids order, skipping missing ones.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchProducts is the SQL fallback used when no search cluster is configured.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, onlyAvailable bool, offset, limit int) (int64, []models.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	base := func() *gorm.DB {
		tx := r.DB.WithContext(ctx).Model(&models.Product{}).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		if onlyAvailable {
			tx = tx.Where("available = ?", true)
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := base().Preload("Category").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// PatchProduct writes only the columns set in req, so a concurrent stock
// decrement is never overwritten by a stale read.
func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	cols := map[string]any{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.Price != nil {
		cols["price"] = *req.Price
	}
	if req.Stock != nil {
		cols["stock"] = *req.Stock
	}
	if req.Available != nil {
		cols["available"] = *req.Available
	}
	if req.CategoryID != nil {
		cols["category_id"] = *req.CategoryID
	}
	if req.SupplierID != nil {
		cols["supplier_id"] = *req.SupplierID
	}

	var prod models.Product
	err := r.Transaction(ctx, func(tx *GormRepo) error {
		if len(cols) > 0 {
			res := tx.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.DB.WithContext(ctx).First(&prod, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LockProducts loads the rows with FOR UPDATE in ascending id order so that
// concurrent checkouts acquire locks in the same sequence.
func (r *GormRepo) LockProducts(ctx context.Context, ids []uint) ([]models.Product, error) {
	var items []models.Product
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DecrementStock subtracts qty only while enough stock remains. It reports
// false when no row matched.
func (r *GormRepo) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}
