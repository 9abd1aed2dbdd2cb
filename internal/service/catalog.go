package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	"github.com/Skotchmaster/bitforge_shop/pkg/search"
)

// ProductIndexer is the search backend. A nil indexer means SQL search.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, doc search.ProductDoc) error
	DeleteProduct(ctx context.Context, id uint) error
	SearchProducts(ctx context.Context, query string, from, size int) (int64, []uint, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  ProductIndexer
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return p, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, f, offset, limit)
}

// Search queries the index when one is configured and falls back to a
// LIKE scan otherwise or when the index is unreachable.
func (s *CatalogService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	if s.Index != nil {
		total, ids, err := s.Index.SearchProducts(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.ProductsByIDs(ctx, ids)
			return total, items, err
		}
		logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog", "error", err)
	}

	return s.Repo.SearchProducts(ctx, q, true, offset, limit)
}

func (s *CatalogService) checkRefs(ctx context.Context, categoryID, supplierID *uint) error {
	if categoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *categoryID); err != nil {
			return notFound(err, "category")
		}
	}
	if supplierID != nil {
		if _, err := s.Repo.GetSupplier(ctx, *supplierID); err != nil {
			return notFound(err, "supplier")
		}
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if blank(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if err := s.checkRefs(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       money.Round(req.Price),
		Stock:       req.Stock,
		Available:   available,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	})
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, prod)
	publish(ctx, s.Events, events.TopicCatalog, key(prod.ID), "product_created", map[string]any{
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Name != nil && blank(*req.Name) {
		return nil, fmt.Errorf("%w: name cannot be blank", ErrValidation)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		p := money.Round(*req.Price)
		req.Price = &p
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if err := s.checkRefs(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, notFound(err, "product")
	}

	s.reindex(ctx, prod)
	publish(ctx, s.Events, events.TopicCatalog, key(prod.ID), "product_updated", map[string]any{
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_error", "svc", "catalog", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicCatalog, key(id), "product_deleted", map[string]any{
		"product_id": id,
	})
	return nil
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	doc := search.ProductDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Available:   p.Available,
	}
	if p.CategoryID != nil {
		if cat, err := s.Repo.GetCategory(ctx, *p.CategoryID); err == nil {
			doc.Category = cat.Name
		}
	}
	if err := s.Index.IndexProduct(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if blank(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	cat := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, cat.Name)
		}
		return nil, err
	}
	return cat, nil
}
