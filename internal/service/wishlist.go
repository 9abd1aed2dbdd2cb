package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
	Cart *CartService
}

func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, productID uint) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return notFound(err, "product")
	}
	return s.Repo.AddToWishlist(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, productID uint) error {
	if err := s.Repo.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return notFound(err, "wishlist item")
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	return s.Repo.GetWishlist(ctx, userID)
}

// MoveToCart adds one unit of a wishlisted product to the cart, with the
// usual cart stock checks, and then drops it from the wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, userID uuid.UUID, productID uint) (*models.CartItem, error) {
	in, err := s.Repo.InWishlist(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !in {
		return nil, fmt.Errorf("%w: wishlist item", ErrNotFound)
	}

	cart := s.Cart
	if cart == nil {
		cart = &CartService{Repo: s.Repo}
	}
	item, err := cart.AddToCart(ctx, userID, productID, 1)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveFromWishlist(ctx, userID, productID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return item, nil
}
