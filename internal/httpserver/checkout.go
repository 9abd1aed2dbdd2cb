package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/bitforge_shop/pkg/session"
)

type CheckoutHTTP struct {
	Svc     *service.CheckoutService
	Session *session.CouponStore
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "checkout", err)
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout", "invalid body", err)
	}

	code := strings.TrimSpace(req.CouponCode)
	if code == "" {
		if stored, err := h.Session.Get(c, userID); err == nil {
			code = stored
		}
	}

	order, err := h.Svc.Checkout(ctx, userID, service.CheckoutInput{
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Notes:         req.Notes,
		CouponCode:    code,
	})
	if err != nil {
		return fail(l, "checkout", err)
	}
	h.Session.Clear(c)

	l.Info("checkout_success", "order_id", order.ID, "number", order.Number)
	return c.JSON(http.StatusCreated, order)
}
