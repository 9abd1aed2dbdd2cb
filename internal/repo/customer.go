package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
)

// Touch upserts the customer projection from token claims. The first-seen
// time is kept on conflict.
func (r *GormRepo) Touch(ctx context.Context, id uuid.UUID, username, email string) error {
	c := models.Customer{ID: id, Username: username, Email: email}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "email", "updated_at"}),
		}).
		Create(&c).Error
}

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var items []models.Customer
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
