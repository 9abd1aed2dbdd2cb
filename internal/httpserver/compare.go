package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type CompareHTTP struct {
	Svc *service.CompareService
}

func (h *CompareHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "compare.list")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "compare_list", err)
	}
	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return fail(l, "compare_list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CompareHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "compare.add")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "compare_add", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "compare_add", err.Error(), err)
	}
	if err := h.Svc.Add(ctx, userID, productID); err != nil {
		return fail(l, "compare_add", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompareHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "compare.remove")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "compare_remove", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return badRequest(l, "compare_remove", err.Error(), err)
	}
	if err := h.Svc.Remove(ctx, userID, productID); err != nil {
		return fail(l, "compare_remove", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompareHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "compare.clear")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "compare_clear", err)
	}
	if err := h.Svc.Clear(ctx, userID); err != nil {
		return fail(l, "compare_clear", err)
	}
	return c.NoContent(http.StatusNoContent)
}
