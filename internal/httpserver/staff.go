package httpserver

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

type SupplierHTTP struct {
	Svc *service.SupplierService
}

func (h *SupplierHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_suppliers", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SupplierHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.create")

	var req transport.CreateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_supplier", "invalid body", err)
	}
	s, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_supplier", err)
	}
	l.Info("create_supplier_success", "supplier_id", s.ID)
	return c.JSON(http.StatusCreated, s)
}

func (h *SupplierHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.toggle")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "toggle_supplier", err.Error(), err)
	}
	s, err := h.Svc.Toggle(ctx, id)
	if err != nil {
		return fail(l, "toggle_supplier", err)
	}
	return c.JSON(http.StatusOK, s)
}

type CouponHTTP struct {
	Svc *service.CouponService
}

func (h *CouponHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_coupons", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CouponHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.create")

	var req transport.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_coupon", "invalid body", err)
	}
	coupon, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_coupon", err)
	}
	l.Info("create_coupon_success", "code", coupon.Code)
	return c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.toggle")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "toggle_coupon", err.Error(), err)
	}
	coupon, err := h.Svc.Toggle(ctx, id)
	if err != nil {
		return fail(l, "toggle_coupon", err)
	}
	return c.JSON(http.StatusOK, coupon)
}

type ReportHTTP struct {
	Svc *service.ReportService
}

// Export renders the whole report before writing so a failure can still
// produce an error status.
func (h *ReportHTTP) Export(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.export")

	kind := c.Param("kind")
	if !service.ValidReport(kind) {
		return badRequest(l, "export_report", fmt.Sprintf("unknown report %q", kind), nil)
	}

	var buf bytes.Buffer
	if err := h.Svc.Write(ctx, kind, &buf); err != nil {
		return fail(l, "export_report", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", kind+".csv"))
	l.Info("export_report_success", "kind", kind, "bytes", buf.Len())
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
