package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/bitforge_shop/pkg/session"
)

type CartHTTP struct {
	Svc     *service.CartService
	Coupons *service.CouponService
	Session *session.CouponStore
}

// GetCart returns the priced cart. A coupon kept in the session is quoted
// against the current subtotal and dropped once it stops being valid.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "get_cart", err)
	}

	view, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart", err)
	}

	if code, err := h.Session.Get(c, userID); err == nil && len(view.Lines) > 0 {
		ev, err := h.Coupons.Evaluate(ctx, code, view.Subtotal)
		switch {
		case err == nil:
			view.Coupon = ev.Quote()
		case errors.Is(err, service.ErrInvalidCoupon):
			l.Info("session_coupon_dropped", "code", code, "reason", err.Error())
			h.Session.Clear(c)
		default:
			return fail(l, "get_cart", err)
		}
	}

	l.Info("get_cart_success", "lines", len(view.Lines))
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "add_to_cart", err)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart", "invalid body", err)
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart", err)
	}

	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "set.quantity.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "set_quantity", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "set_quantity", err.Error(), err)
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_quantity", "invalid body", err)
	}

	item, err := h.Svc.SetQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		return fail(l, "set_quantity", err)
	}
	if item == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.item.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "remove_item", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "remove_item", err.Error(), err)
	}

	if err := h.Svc.RemoveItem(ctx, userID, productID); err != nil {
		return fail(l, "remove_item", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.one.from.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "delete_one_from_cart", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "delete_one_from_cart", err.Error(), err)
	}

	deleted, item, err := h.Svc.DeleteOneFromCart(ctx, productID, userID)
	if err != nil {
		return fail(l, "delete_one_from_cart", err)
	}

	resp := transport.DeleteOneFromCartResponse{ProductID: productID, Deleted: deleted}
	if !deleted {
		resp.Quantity = item.Quantity
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) DeleteAllFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.all.from.cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "delete_all_from_cart", err)
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return fail(l, "delete_all_from_cart", err)
	}
	h.Session.Clear(c)

	l.Info("cart successfully cleared")
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ApplyCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "apply.coupon")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "apply_coupon", err)
	}

	var req transport.ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "apply_coupon", "invalid body", err)
	}

	ev, err := h.Coupons.Apply(ctx, userID, req.Code)
	if err != nil {
		return fail(l, "apply_coupon", err)
	}
	if err := h.Session.Set(c, userID, ev.Coupon.Code); err != nil {
		return fail(l, "apply_coupon", err)
	}

	l.Info("apply_coupon_success", "code", ev.Coupon.Code)
	return c.JSON(http.StatusOK, ev.Quote())
}

func (h *CartHTTP) RemoveCoupon(c echo.Context) error {
	h.Session.Clear(c)
	return c.NoContent(http.StatusNoContent)
}
