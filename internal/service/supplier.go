package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
)

type SupplierService struct {
	Repo *repo.GormRepo
}

func (s *SupplierService) Create(ctx context.Context, req transport.CreateSupplierRequest) (*models.Supplier, error) {
	if blank(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	sup := &models.Supplier{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: req.Address,
		Active:  true,
	}
	if err := s.Repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	return s.Repo.ListSuppliers(ctx)
}

func (s *SupplierService) Toggle(ctx context.Context, id uint) (*models.Supplier, error) {
	sup, err := s.Repo.ToggleSupplier(ctx, id)
	if err != nil {
		return nil, notFound(err, "supplier")
	}
	return sup, nil
}
