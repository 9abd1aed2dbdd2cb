package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/internal/util"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc     *service.OrderService
	Returns *service.ReturnService
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "get_orders", err)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.History(ctx, userID, offset, limit)
	if err != nil {
		return fail(l, "get_orders", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "get_order", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "get_order", err.Error(), err)
	}

	order, err := h.Svc.Detail(ctx, userID, id)
	if err != nil {
		return fail(l, "get_order", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListAll(ctx, c.QueryParam("status"), offset, limit)
	if err != nil {
		return fail(l, "list_orders", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_status", err.Error(), err)
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_status", "invalid body", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_status", err)
	}

	l.Info("update_order_status_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) FileReturn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "return.file")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "file_return", err)
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "file_return", err.Error(), err)
	}

	var req transport.FileReturnRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "file_return", "invalid body", err)
	}

	ret, err := h.Returns.FileReturn(ctx, orderID, userID, req.Reason, req.Description)
	if err != nil {
		return fail(l, "file_return", err)
	}

	l.Info("file_return_success", "return_id", ret.ID, "order_id", orderID)
	return c.JSON(http.StatusCreated, ret)
}

func (h *OrderHTTP) MyReturns(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "return.mine")

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(l, "list_returns", err)
	}

	items, err := h.Returns.ListForUser(ctx, userID)
	if err != nil {
		return fail(l, "list_returns", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHTTP) ListAllReturns(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "return.list_all")

	items, err := h.Returns.ListAll(ctx, c.QueryParam("status"))
	if err != nil {
		return fail(l, "list_returns", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHTTP) ResolveReturn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "return.resolve")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "resolve_return", err.Error(), err)
	}

	var req transport.ResolveReturnRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "resolve_return", "invalid body", err)
	}

	ret, err := h.Returns.ResolveReturn(ctx, id, req.Status, req.RefundAmount, req.StaffResponse)
	if err != nil {
		return fail(l, "resolve_return", err)
	}

	l.Info("resolve_return_success", "return_id", ret.ID, "status", ret.Status)
	return c.JSON(http.StatusOK, ret)
}
