package httpserver

import (
	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	OrderHandler    *OrderHTTP
	WishlistHandler *WishlistHTTP
	SupplierHandler *SupplierHTTP
	CouponHandler   *CouponHTTP
	ReportHandler   *ReportHTTP
	ReviewHandler   *ReviewHTTP
	CompareHandler  *CompareHTTP
	RestockHandler  *RestockHTTP
	Auth            *middleware.AuthMiddleware
	DB              Pinger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", live)
	e.GET("/health/ready", ready(d.DB))

	catalog := e.Group("/catalog")
	catalog.GET("/products", d.CatalogHandler.GetProducts)
	catalog.GET("/products/search", d.CatalogHandler.SearchProducts)
	catalog.GET("/products/:id", d.CatalogHandler.GetProduct)
	catalog.GET("/categories", d.CatalogHandler.ListCategories)
	catalog.GET("/products/:id/reviews", d.ReviewHandler.List)
	catalog.POST("/products/:id/reviews", d.ReviewHandler.Add, d.Auth.RequireAuth)

	cart := e.Group("/cart", d.Auth.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.DeleteAllFromCart)
	cart.PATCH("/items/:product_id", d.CartHandler.SetQuantity)
	cart.DELETE("/items/:product_id", d.CartHandler.RemoveItem)
	cart.POST("/items/:product_id/decrement", d.CartHandler.DeleteOneFromCart)
	cart.POST("/coupon", d.CartHandler.ApplyCoupon)
	cart.DELETE("/coupon", d.CartHandler.RemoveCoupon)

	e.POST("/checkout", d.CheckoutHandler.Checkout, d.Auth.RequireAuth)

	orders := e.Group("/orders", d.Auth.RequireAuth)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/returns", d.OrderHandler.FileReturn)
	e.GET("/returns", d.OrderHandler.MyReturns, d.Auth.RequireAuth)

	wishlist := e.Group("/wishlist", d.Auth.RequireAuth)
	wishlist.GET("", d.WishlistHandler.List)
	wishlist.POST("/:product_id", d.WishlistHandler.Add)
	wishlist.DELETE("/:product_id", d.WishlistHandler.Remove)
	wishlist.POST("/:product_id/move-to-cart", d.WishlistHandler.MoveToCart)

	compare := e.Group("/compare", d.Auth.RequireAuth)
	compare.GET("", d.CompareHandler.List)
	compare.DELETE("", d.CompareHandler.Clear)
	compare.POST("/:product_id", d.CompareHandler.Add)
	compare.DELETE("/:product_id", d.CompareHandler.Remove)

	restock := e.Group("/restock-requests", d.Auth.RequireAuth)
	restock.GET("", d.RestockHandler.Mine)
	restock.POST("", d.RestockHandler.Create)

	staff := e.Group("/staff", d.Auth.RequireStaff)
	staff.POST("/products", d.CatalogHandler.CreateProduct)
	staff.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	staff.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	staff.POST("/categories", d.CatalogHandler.CreateCategory)

	staff.GET("/suppliers", d.SupplierHandler.List)
	staff.POST("/suppliers", d.SupplierHandler.Create)
	staff.PATCH("/suppliers/:id/toggle", d.SupplierHandler.Toggle)

	staff.GET("/orders", d.OrderHandler.ListAllOrders)
	staff.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	staff.GET("/coupons", d.CouponHandler.List)
	staff.POST("/coupons", d.CouponHandler.Create)
	staff.PATCH("/coupons/:id/toggle", d.CouponHandler.Toggle)

	staff.GET("/returns", d.OrderHandler.ListAllReturns)
	staff.PATCH("/returns/:id", d.OrderHandler.ResolveReturn)

	staff.GET("/restock-requests", d.RestockHandler.ListAll)
	staff.POST("/restock-requests/:id/complete", d.RestockHandler.Complete)

	staff.GET("/reports/:kind", d.ReportHandler.Export)
}
