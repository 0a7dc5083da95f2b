package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/hanbit-commerce/storefront/pkg/enums"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

// DefaultCouponMinimumTotal is the post-item-discount total a cart must reach
// before a percentage coupon becomes eligible.
const DefaultCouponMinimumTotal = 10000

// Engine evaluates cart totals and coupon eligibility. It is pure: no state,
// no side effects.
type Engine struct {
	couponMinimumTotal int
}

// NewEngine builds a pricing engine. A non-positive minimum falls back to the
// default.
func NewEngine(couponMinimumTotal int) Engine {
	if couponMinimumTotal <= 0 {
		couponMinimumTotal = DefaultCouponMinimumTotal
	}
	return Engine{couponMinimumTotal: couponMinimumTotal}
}

// SelectTierRate returns the discount rate of the highest tier whose quantity
// threshold the purchased quantity reaches, or 0 when none qualifies.
func SelectTierRate(quantity int, tiers []models.DiscountTier) float64 {
	var selected *models.DiscountTier
	for _, tier := range tiers {
		if tier.Quantity <= quantity {
			if selected == nil || tier.Quantity > selected.Quantity {
				copy := tier
				selected = &copy
			}
		}
	}
	if selected == nil {
		return 0
	}
	return selected.Rate
}

// Totals derives the computed totals for the cart with the optional coupon
// applied after per-item discounts. Every stage is floored at zero and the
// resulting fields are rounded to whole currency units.
func (e Engine) Totals(cart []models.CartItem, coupon *models.Coupon) models.Totals {
	subtotal := 0
	itemDiscount := decimal.Zero

	for _, item := range cart {
		line := item.Product.Price * item.Quantity
		subtotal += line

		rate := SelectTierRate(item.Quantity, item.Product.Discounts)
		if rate > 0 {
			itemDiscount = itemDiscount.Add(
				decimal.NewFromInt(int64(line)).Mul(decimal.NewFromFloat(rate)),
			)
		}
	}

	running := decimal.NewFromInt(int64(subtotal)).Sub(itemDiscount)
	if running.IsNegative() {
		running = decimal.Zero
	}

	couponDiscount := decimal.Zero
	if coupon != nil {
		switch coupon.DiscountType {
		case enums.DiscountTypeAmount:
			couponDiscount = decimal.NewFromInt(int64(coupon.DiscountValue))
		case enums.DiscountTypePercentage:
			couponDiscount = running.
				Mul(decimal.NewFromInt(int64(coupon.DiscountValue))).
				Div(decimal.NewFromInt(100))
		}
		if couponDiscount.GreaterThan(running) {
			couponDiscount = running
		}
	}

	total := running.Sub(couponDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.Totals{
		Subtotal:            subtotal,
		ItemDiscountTotal:   int(itemDiscount.Round(0).IntPart()),
		CouponDiscountTotal: int(couponDiscount.Round(0).IntPart()),
		TotalAfterDiscount:  int(total.Round(0).IntPart()),
	}
}

// CanApplyCoupon reports whether the coupon is eligible for the cart. The gate
// is evaluated against the post-item-discount total with no coupon applied;
// only percentage coupons carry a minimum.
func (e Engine) CanApplyCoupon(coupon models.Coupon, cart []models.CartItem) bool {
	if coupon.DiscountType != enums.DiscountTypePercentage {
		return true
	}
	return e.Totals(cart, nil).TotalAfterDiscount >= e.couponMinimumTotal
}
