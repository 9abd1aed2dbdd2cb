package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type RestockHTTP struct {
	Svc *service.RestockService
}

func (h *RestockHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restock.create")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "create_restock", err)
	}

	var req transport.CreateRestockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_restock", "invalid body", err)
	}

	rr, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return fail(l, "create_restock", err)
	}

	l.Info("create_restock_success", "request_id", rr.ID)
	return c.JSON(http.StatusCreated, rr)
}

func (h *RestockHTTP) Mine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restock.mine")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "my_restock", err)
	}
	items, err := h.Svc.ListForUser(ctx, userID)
	if err != nil {
		return fail(l, "my_restock", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *RestockHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restock.list_all")

	items, err := h.Svc.ListAll(ctx, c.QueryParam("status"))
	if err != nil {
		return fail(l, "list_restock", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *RestockHTTP) Complete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restock.complete")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "complete_restock", err.Error(), err)
	}

	rr, err := h.Svc.Complete(ctx, id)
	if err != nil {
		return fail(l, "complete_restock", err)
	}

	l.Info("complete_restock_success", "request_id", rr.ID, "quantity", rr.Quantity)
	return c.JSON(http.StatusOK, rr)
}
