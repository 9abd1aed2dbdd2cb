package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// Add stores the user's only review of productID.
func (s *ReviewService) Add(ctx context.Context, userID uuid.UUID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "product")
	}

	rv := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCatalog, key(productID), "review_added", map[string]any{
		"product_id": productID,
		"rating":     rating,
	})
	return rv, nil
}

// Summary returns the rating average (two places, zero without reviews)
// and the reviews newest first.
func (s *ReviewService) Summary(ctx context.Context, productID uint) (*transport.ReviewSummary, []models.Review, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, nil, notFound(err, "product")
	}

	count, sum, err := s.Repo.RatingStats(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.Repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	summary := &transport.ReviewSummary{ProductID: productID, Count: count, Average: decimal.Zero}
	if count > 0 {
		summary.Average = money.Round(decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)))
	}
	return summary, reviews, nil
}
