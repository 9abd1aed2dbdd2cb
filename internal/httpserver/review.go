package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	productID, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "list_reviews", err.Error(), err)
	}

	summary, reviews, err := h.Svc.Summary(ctx, productID)
	if err != nil {
		return fail(l, "list_reviews", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"summary": summary,
		"data":    reviews,
	})
}

func (h *ReviewHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "add_review", err)
	}
	productID, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "add_review", err.Error(), err)
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_review", "invalid body", err)
	}

	rv, err := h.Svc.Add(ctx, userID, productID, req.Rating, req.Comment)
	if err != nil {
		return fail(l, "add_review", err)
	}

	l.Info("add_review_success", "product_id", productID, "rating", rv.Rating)
	return c.JSON(http.StatusCreated, rv)
}
