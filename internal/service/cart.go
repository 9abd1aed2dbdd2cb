package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart prices every line from the current product price.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &transport.CartView{Lines: make([]transport.CartLine, 0, len(items)), Subtotal: decimal.Zero}
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		sub := money.LineTotal(it.Product.Price, it.Quantity)
		view.Lines = append(view.Lines, transport.CartLine{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
			Subtotal:  sub,
			Stock:     it.Product.Stock,
			Available: it.Product.Available,
		})
		view.Subtotal = view.Subtotal.Add(sub)
	}
	view.Subtotal = money.Round(view.Subtotal)
	return view, nil
}

// lockForCart loads the product under lock and checks that wanted units
// can be sold.
func lockForCart(ctx context.Context, tx *repo.GormRepo, productID uint, wanted int) error {
	locked, err := tx.LockProducts(ctx, []uint{productID})
	if err != nil {
		return err
	}
	if len(locked) == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	p := locked[0]
	if !p.Available {
		return fmt.Errorf("%w: product %q is not available", ErrConflict, p.Name)
	}
	if wanted > p.Stock {
		return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: wanted, Available: p.Stock}
	}
	return nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, productID uint, qty int) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity must be more than zero", ErrValidation)
	}

	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		wanted := qty
		line, err := tx.GetCartLine(ctx, userID, productID)
		switch {
		case err == nil:
			wanted += line.Quantity
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := lockForCart(ctx, tx, productID, wanted); err != nil {
			return err
		}
		return tx.AddToCart(ctx, item)
	})
	if pkgdb.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: cart line changed concurrently, try again", ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity overwrites the line quantity. Zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, productID uint, qty int) (*models.CartItem, error) {
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if qty == 0 {
		return nil, s.RemoveItem(ctx, userID, productID)
	}

	var item *models.CartItem
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetCartLine(ctx, userID, productID); err != nil {
			return notFound(err, "cart item")
		}
		if err := lockForCart(ctx, tx, productID, qty); err != nil {
			return err
		}
		var err error
		item, err = tx.SetCartQuantity(ctx, userID, productID, qty)
		return err
	})
	if err != nil {
		return nil, notFound(err, "cart item")
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uint) error {
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		return notFound(err, "cart item")
	}
	return nil
}

func (s *CartService) DeleteOneFromCart(ctx context.Context, productID uint, userID uuid.UUID) (bool, *models.CartItem, error) {
	if productID == 0 {
		return false, nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	deleted, item, err := s.Repo.DeleteOneFromCart(ctx, productID, userID)
	if err != nil {
		return false, nil, notFound(err, "cart item")
	}
	return deleted, item, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	n, err := s.Repo.DeleteAllFromCart(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmptyCart
	}
	return nil
}
