package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
)

// MaxCompareItems bounds the side-by-side comparison list.
const MaxCompareItems = 4

type CompareService struct {
	Repo *repo.GormRepo
}

func (s *CompareService) Add(ctx context.Context, userID uuid.UUID, productID uint) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return notFound(err, "product")
	}

	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		in, err := tx.InCompare(ctx, userID, productID)
		if err != nil || in {
			return err
		}
		n, err := tx.CountCompare(ctx, userID)
		if err != nil {
			return err
		}
		if n >= MaxCompareItems {
			return fmt.Errorf("%w: at most %d products can be compared", ErrConflict, MaxCompareItems)
		}
		return tx.AddToCompare(ctx, userID, productID)
	})
}

func (s *CompareService) Remove(ctx context.Context, userID uuid.UUID, productID uint) error {
	if err := s.Repo.RemoveFromCompare(ctx, userID, productID); err != nil {
		return notFound(err, "compared product")
	}
	return nil
}

func (s *CompareService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCompare(ctx, userID)
}

func (s *CompareService) List(ctx context.Context, userID uuid.UUID) ([]models.CompareItem, error) {
	return s.Repo.GetCompare(ctx, userID)
}
