package repo

import (
	"context"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Create(rv).Error
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var items []models.Review
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RatingStats returns the review count and the rating sum for productID.
func (r *GormRepo) RatingStats(ctx context.Context, productID uint) (count, sum int64, err error) {
	var row struct {
		Count int64
		Sum   int64
	}
	err = r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("product_id = ?", productID).
		Scan(&row).Error
	return row.Count, row.Sum, err
}
