package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

type RestockService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Now    func() time.Time
}

func (s *RestockService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create files a pending request. Without a product the note carries the
// whole request.
func (s *RestockService) Create(ctx context.Context, userID uuid.UUID, req transport.CreateRestockRequest) (*models.RestockRequest, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be more than zero", ErrValidation)
	}
	if req.ProductID == nil && blank(req.Note) {
		return nil, fmt.Errorf("%w: note is required when no product is given", ErrValidation)
	}
	if req.ProductID != nil {
		if _, err := s.Repo.GetProduct(ctx, *req.ProductID); err != nil {
			return nil, notFound(err, "product")
		}
	}

	rr := &models.RestockRequest{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Note:      strings.TrimSpace(req.Note),
		Status:    models.RestockStatusPending,
	}
	if err := s.Repo.CreateRestockRequest(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *RestockService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RestockRequest, error) {
	return s.Repo.ListRestockRequests(ctx, &userID, "")
}

func (s *RestockService) ListAll(ctx context.Context, status string) ([]models.RestockRequest, error) {
	st := models.RestockStatus(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListRestockRequests(ctx, nil, st)
}

// Complete marks a pending request done and adds its quantity to the
// product stock in the same transaction.
func (s *RestockService) Complete(ctx context.Context, id uint) (*models.RestockRequest, error) {
	var rr *models.RestockRequest
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		rr, err = tx.GetRestockRequest(ctx, id)
		if err != nil {
			return notFound(err, "restock request")
		}

		ok, err := tx.CompleteRestockRequest(ctx, id, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: restock request is already completed", ErrConflict)
		}

		if rr.ProductID != nil {
			ok, err := tx.IncrementStock(ctx, *rr.ProductID, rr.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %d", ErrNotFound, *rr.ProductID)
			}
		}

		rr, err = tx.GetRestockRequest(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("restock_completed", "svc", "restock", "request_id", rr.ID, "quantity", rr.Quantity)
	if rr.ProductID != nil {
		publish(ctx, s.Events, events.TopicCatalog, key(*rr.ProductID), "restock_completed", map[string]any{
			"request_id": rr.ID,
			"product_id": *rr.ProductID,
			"quantity":   rr.Quantity,
		})
	}
	return rr, nil
}
