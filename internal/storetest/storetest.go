// Package storetest opens a migrated SQLite store for tests.
package storetest

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
)

func Open(t *testing.T) *repo.GormRepo {
	t.Helper()

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := repo.New(db)
	require.NoError(t, r.Migrate(ctx))
	return r
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Product(t *testing.T, r *repo.GormRepo, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:      name,
		Price:     Dec(price),
		Stock:     stock,
		Available: true,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func Category(t *testing.T, r *repo.GormRepo, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, r.DB.Create(c).Error)
	return c
}

// Coupon stores c, defaulting the expiry to a month ahead and the cap to 100.
func Coupon(t *testing.T, r *repo.GormRepo, c models.Coupon) *models.Coupon {
	t.Helper()
	if c.ExpiresOn.IsZero() {
		c.ExpiresOn = time.Now().UTC().AddDate(0, 1, 0)
	}
	if c.UsageCap == 0 {
		c.UsageCap = 100
	}
	require.NoError(t, r.DB.Create(&c).Error)
	return &c
}

func AddToCart(t *testing.T, r *repo.GormRepo, userID uuid.UUID, productID uint, qty int) {
	t.Helper()
	require.NoError(t, r.DB.Create(&models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}).Error)
}

func Customer(t *testing.T, r *repo.GormRepo, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, r.Touch(context.Background(), id, username, username+"@example.com"))
	return id
}

// Order stores a single-line order for userID.
func Order(t *testing.T, r *repo.GormRepo, userID uuid.UUID, number, total string, status models.OrderStatus) *models.Order {
	t.Helper()
	o := &models.Order{
		Number:        number,
		UserID:        userID,
		Status:        status,
		Subtotal:      Dec(total),
		Discount:      decimal.Zero,
		Total:         Dec(total),
		RecipientName: "Ada",
		Phone:         "555-0100",
		Address:       "1 Main St",
		City:          "Springfield",
		Items: []models.OrderItem{{
			ProductName: "Widget",
			UnitPrice:   Dec(total),
			Quantity:    1,
			LineTotal:   Dec(total),
		}},
	}
	require.NoError(t, r.DB.Create(o).Error)
	return o
}

// BeforeUpdate runs fn once, inside the same connection, right before the
// first UPDATE against table. It simulates a write that lands between a
// read and a conditional update.
func BeforeUpdate(t *testing.T, r *repo.GormRepo, table string, fn func(tx *gorm.DB)) {
	t.Helper()
	var fired atomic.Bool
	err := r.DB.Callback().Update().Before("gorm:update").Register("storetest:before_update:"+table, func(db *gorm.DB) {
		if db.Statement.Schema == nil || db.Statement.Schema.Table != table {
			return
		}
		if !fired.CompareAndSwap(false, true) {
			return
		}
		fn(db.Session(&gorm.Session{NewDB: true}))
	})
	require.NoError(t, err)
}
