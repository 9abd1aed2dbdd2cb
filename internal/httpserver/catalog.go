package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/internal/util"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "get_product", err.Error(), err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{OnlyAvailable: true}
	if raw := c.QueryParam("category"); raw != "" {
		cat := util.ParseIntDefault(raw, 0)
		if cat < 1 {
			return badRequest(l, "get_products", "category must be a positive integer", nil)
		}
		id := uint(cat)
		filter.CategoryID = &id
	}

	total, items, err := h.Svc.GetProducts(ctx, filter, offset, limit)
	if err != nil {
		return fail(l, "get_products", err)
	}

	l.Info("get_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_products", err)
	}

	l.Info("search_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return fail(l, "list_categories", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_category", "invalid body", err)
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return fail(l, "create_category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_create", "invalid body", err)
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "product_create", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "product_patch", err.Error(), err)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_patch", "invalid body", err)
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		return fail(l, "product_patch", err)
	}

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "product_delete", err.Error(), err)
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
