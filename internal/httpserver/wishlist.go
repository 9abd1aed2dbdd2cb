package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "wishlist_list", err)
	}
	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return fail(l, "wishlist_list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "wishlist_add", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "wishlist_add", err.Error(), err)
	}
	if err := h.Svc.Add(ctx, userID, productID); err != nil {
		return fail(l, "wishlist_add", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "wishlist_remove", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "wishlist_remove", err.Error(), err)
	}
	if err := h.Svc.Remove(ctx, userID, productID); err != nil {
		return fail(l, "wishlist_remove", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHTTP) MoveToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.move_to_cart")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "wishlist_move", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "wishlist_move", err.Error(), err)
	}

	item, err := h.Svc.MoveToCart(ctx, userID, productID)
	if err != nil {
		return fail(l, "wishlist_move", err)
	}

	l.Info("wishlist_move_success", "product_id", productID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}
