package models

import "github.com/hanbit-commerce/storefront/pkg/enums"

// DiscountTier grants a rate once the purchased quantity reaches the threshold.
// Thresholds within a product are assumed distinct; the highest qualifying one wins.
type DiscountTier struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Product is the canonical catalog listing. Price is an integer currency unit.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       int            `json:"price"`
	Stock       int            `json:"stock"`
	Discounts   []DiscountTier `json:"discounts"`
	Description string         `json:"description,omitempty"`
	Recommended bool           `json:"is_recommended,omitempty"`
}

// CartItem pairs a product snapshot with the quantity committed to the cart.
// At most one entry exists per product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Coupon applies a second discount stage on top of item discounts. Codes are
// unique after case normalization.
type Coupon struct {
	Name          string             `json:"name"`
	Code          string             `json:"code"`
	DiscountType  enums.DiscountType `json:"discount_type"`
	DiscountValue int                `json:"discount_value"`
}

// Notification is a transient user-facing message that expires on its own.
type Notification struct {
	ID       string         `json:"id"`
	Message  string         `json:"message"`
	Severity enums.Severity `json:"severity"`
}

// Totals is derived fresh from the cart and selected coupon; it is never persisted.
type Totals struct {
	Subtotal            int `json:"subtotal"`
	ItemDiscountTotal   int `json:"item_discount_total"`
	CouponDiscountTotal int `json:"coupon_discount_total"`
	TotalAfterDiscount  int `json:"total_after_discount"`
}
