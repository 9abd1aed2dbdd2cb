package transport

import (
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Available   *bool           `json:"available"`
	CategoryID  *uint           `json:"category_id"`
	SupplierID  *uint           `json:"supplier_id"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Available   *bool            `json:"available"`
	CategoryID  *uint            `json:"category_id"`
	SupplierID  *uint            `json:"supplier_id"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Stock     int             `json:"stock"`
	Available bool            `json:"available"`
}

type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Coupon   *CouponQuote    `json:"coupon,omitempty"`
}

type DeleteOneFromCartResponse struct {
	ProductID uint `json:"product_id"`
	Deleted   bool `json:"deleted"`
	Quantity  int  `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type CouponQuote struct {
	Code       string          `json:"code"`
	Percentage int             `json:"percentage"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

type CreateCouponRequest struct {
	Code        string           `json:"code"`
	Percentage  int              `json:"percentage"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	MinPurchase decimal.Decimal  `json:"min_purchase"`
	Active      *bool            `json:"active"`
	ExpiresOn   string           `json:"expires_on"`
	UsageCap    int              `json:"usage_cap"`
}

type CheckoutRequest struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Notes         string `json:"notes"`
	CouponCode    string `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type FileReturnRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type ResolveReturnRequest struct {
	Status        string           `json:"status"`
	RefundAmount  *decimal.Decimal `json:"refund_amount"`
	StaffResponse string           `json:"staff_response"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewSummary struct {
	ProductID uint            `json:"product_id"`
	Count     int64           `json:"count"`
	Average   decimal.Decimal `json:"average"`
}

type CreateRestockRequest struct {
	ProductID *uint  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}
