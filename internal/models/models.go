package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string `gorm:"uniqueIndex;not null"      json:"name"`
	Description string `gorm:"not null"                  json:"description"`
	Icon        string `gorm:"not null"                  json:"icon"`
}

type Supplier struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name    string `gorm:"not null"                  json:"name"`
	Email   string `gorm:"not null"                  json:"email"`
	Phone   string `gorm:"not null"                  json:"phone"`
	Address string `gorm:"not null"                  json:"address"`
	Active  bool   `gorm:"not null"                  json:"active"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name        string          `gorm:"not null"                        json:"name"`
	Description string          `gorm:"not null"                        json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"price"`
	Stock       int             `gorm:"not null;check:stock >= 0"       json:"stock"`
	Available   bool            `gorm:"not null"                        json:"available"`
	CategoryID  *uint           `gorm:"index"                           json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL"    json:"category,omitempty"`
	SupplierID  *uint           `gorm:"index"                           json:"supplier_id"`
	Supplier    *Supplier       `gorm:"constraint:OnDelete:SET NULL"    json:"-"`
	CreatedAt   time.Time       `                                       json:"created_at"`
	UpdatedAt   time.Time       `                                       json:"updated_at"`
}

// Customer is the local projection of an authenticated user.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Username  string    `gorm:"not null"              json:"username"`
	Email     string    `gorm:"not null"              json:"email"`
	CreatedAt time.Time `                             json:"created_at"`
	UpdatedAt time.Time `                             json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null"     json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"                    json:"-"`
	Quantity  int       `gorm:"not null;check:quantity > 0"                    json:"quantity"`
	CreatedAt time.Time `                                                      json:"created_at"`
	UpdatedAt time.Time `                                                      json:"updated_at"`
}

// Coupon codes are stored trimmed and upper-cased.
type Coupon struct {
	ID          uint                `gorm:"primaryKey;autoIncrement"                json:"id"`
	Code        string              `gorm:"uniqueIndex;not null"                    json:"code"`
	Percentage  int                 `gorm:"not null;check:percentage BETWEEN 1 AND 100" json:"percentage"`
	MaxDiscount decimal.NullDecimal `gorm:"type:decimal(12,2)"                      json:"max_discount"`
	MinPurchase decimal.Decimal     `gorm:"type:decimal(12,2);not null"             json:"min_purchase"`
	Active      bool                `gorm:"not null"                                json:"active"`
	ExpiresOn   time.Time           `gorm:"not null"                                json:"expires_on"`
	UsageCap    int                 `gorm:"not null"                                json:"usage_cap"`
	UsageCount  int                 `gorm:"not null;check:usage_count <= usage_cap" json:"usage_count"`
	CreatedAt   time.Time           `                                               json:"created_at"`
	UpdatedAt   time.Time           `                                               json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint            `gorm:"primaryKey"                       json:"id"`
	Number        string          `gorm:"uniqueIndex;size:16;not null"     json:"number"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"         json:"user_id"`
	Status        OrderStatus     `gorm:"index;not null"                   json:"status"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"total"`
	CouponID      *uint           `gorm:"index"                            json:"coupon_id"`
	Coupon        *Coupon         `gorm:"constraint:OnDelete:SET NULL"     json:"-"`
	CouponCode    string          `gorm:"not null"                         json:"coupon_code,omitempty"`
	RecipientName string          `gorm:"not null"                         json:"recipient_name"`
	Phone         string          `gorm:"not null"                         json:"phone"`
	Address       string          `gorm:"not null"                         json:"address"`
	City          string          `gorm:"not null"                         json:"city"`
	PostalCode    string          `gorm:"not null"                         json:"postal_code,omitempty"`
	Notes         string          `gorm:"not null"                         json:"notes,omitempty"`
	Items         []OrderItem     `gorm:"constraint:OnDelete:CASCADE"      json:"items,omitempty"`
	CreatedAt     time.Time       `gorm:"index"                            json:"created_at"`
	UpdatedAt     time.Time       `                                        json:"updated_at"`
}

// OrderItem snapshots name and price so it survives product changes.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"                       json:"id"`
	OrderID     uint            `gorm:"index;not null"                   json:"order_id"`
	ProductID   *uint           `gorm:"index"                            json:"product_id"`
	Product     *Product        `gorm:"constraint:OnDelete:SET NULL"     json:"-"`
	ProductName string          `gorm:"not null"                         json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"unit_price"`
	Quantity    int             `gorm:"not null;check:quantity > 0"      json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"line_total"`
}

type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusCompleted ReturnStatus = "completed"
)

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusCompleted:
		return true
	}
	return false
}

type ReturnReason string

const (
	ReasonDamaged        ReturnReason = "damaged"
	ReasonWrongItem      ReturnReason = "wrong_item"
	ReasonNotAsDescribed ReturnReason = "not_as_described"
	ReasonChangedMind    ReturnReason = "changed_mind"
	ReasonOther          ReturnReason = "other"
)

func (r ReturnReason) Valid() bool {
	switch r {
	case ReasonDamaged, ReasonWrongItem, ReasonNotAsDescribed, ReasonChangedMind, ReasonOther:
		return true
	}
	return false
}

type Return struct {
	ID            uint                `gorm:"primaryKey"                    json:"id"`
	OrderID       uint                `gorm:"index;not null"                json:"order_id"`
	Order         *Order              `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
	UserID        uuid.UUID           `gorm:"type:uuid;index;not null"      json:"user_id"`
	Reason        ReturnReason        `gorm:"not null"                      json:"reason"`
	Description   string              `gorm:"not null"                      json:"description"`
	Status        ReturnStatus        `gorm:"index;not null"                json:"status"`
	RefundAmount  decimal.NullDecimal `gorm:"type:decimal(12,2)"            json:"refund_amount"`
	StaffResponse string              `gorm:"not null"                      json:"staff_response,omitempty"`
	ResolvedAt    *time.Time          `                                     json:"resolved_at,omitempty"`
	CreatedAt     time.Time           `                                     json:"created_at"`
	UpdatedAt     time.Time           `                                     json:"updated_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey"                                          json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null"      json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"                         json:"product,omitempty"`
	CreatedAt time.Time `                                                           json:"created_at"`
}

// Review is one rating per (user, product).
type Review struct {
	ID        uint      `gorm:"primaryKey"                                        json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_review_user_product;not null"      json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"                       json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_review_user_product;not null" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"             json:"rating"`
	Comment   string    `gorm:"not null"                                          json:"comment"`
	CreatedAt time.Time `                                                         json:"created_at"`
}

type CompareItem struct {
	ID        uint      `gorm:"primaryKey"                                         json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_compare_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_compare_user_product;not null"      json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"                        json:"product,omitempty"`
	CreatedAt time.Time `                                                          json:"created_at"`
}

type RestockStatus string

const (
	RestockStatusPending   RestockStatus = "pending"
	RestockStatusCompleted RestockStatus = "completed"
)

func (s RestockStatus) Valid() bool {
	return s == RestockStatusPending || s == RestockStatusCompleted
}

// RestockRequest asks staff to bring in more units. A nil ProductID is a
// free-form request described only by Note.
type RestockRequest struct {
	ID          uint          `gorm:"primaryKey"                     json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;index;not null"       json:"user_id"`
	ProductID   *uint         `gorm:"index"                          json:"product_id"`
	Product     *Product      `gorm:"constraint:OnDelete:SET NULL"   json:"product,omitempty"`
	Quantity    int           `gorm:"not null;check:quantity > 0"    json:"quantity"`
	Note        string        `gorm:"not null"                       json:"note"`
	Status      RestockStatus `gorm:"index;not null"                 json:"status"`
	CompletedAt *time.Time    `                                      json:"completed_at,omitempty"`
	CreatedAt   time.Time     `                                      json:"created_at"`
	UpdatedAt   time.Time     `                                      json:"updated_at"`
}

// All lists every table in migration order.
func All() []any {
	return []any{
		&Category{},
		&Supplier{},
		&Product{},
		&Customer{},
		&Coupon{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Return{},
		&WishlistItem{},
		&Review{},
		&CompareItem{},
		&RestockRequest{},
	}
}
