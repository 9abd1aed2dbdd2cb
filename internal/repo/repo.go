package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Transaction runs fn against a repo bound to one database transaction.
// Nested calls become savepoints.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

func (r *GormRepo) Ping(ctx context.Context) error {
	return pkgdb.Ping(ctx, r.DB)
}
