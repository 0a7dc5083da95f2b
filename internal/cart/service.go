package cart

import (
	"fmt"

	"github.com/hanbit-commerce/storefront/internal/catalog"
	"github.com/hanbit-commerce/storefront/pkg/enums"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/models"
	"github.com/hanbit-commerce/storefront/pkg/pricing"
)

type productLoader interface {
	Get(id string) (models.Product, bool)
}

type notifier interface {
	Push(message string, severity enums.Severity)
}

type orderNumberGenerator interface {
	NewOrderNumber() string
}

// Service is the cart state machine. Every transition is all-or-nothing: on a
// failed precondition the state is untouched and exactly one error
// notification is emitted.
type Service interface {
	Items() []models.CartItem
	SelectedCoupon() *models.Coupon
	Totals() models.Totals
	AddToCart(product models.Product) error
	RemoveFromCart(productID string)
	UpdateQuantity(productID string, quantity int) error
	ApplyCoupon(coupon models.Coupon) error
	SetSelectedCoupon(coupon *models.Coupon)
	CompleteOrder() string
	Replace(items []models.CartItem)
}

type service struct {
	items          []models.CartItem
	selectedCoupon *models.Coupon
	products       productLoader
	engine         pricing.Engine
	notifier       notifier
	orders         orderNumberGenerator
}

// NewService wires the cart against its collaborators.
func NewService(products productLoader, engine pricing.Engine, notifier notifier, orders orderNumberGenerator) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	return &service{products: products, engine: engine, notifier: notifier, orders: orders}, nil
}

func (s *service) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) SelectedCoupon() *models.Coupon {
	if s.selectedCoupon == nil {
		return nil
	}
	coupon := *s.selectedCoupon
	return &coupon
}

func (s *service) Totals() models.Totals {
	return s.engine.Totals(s.items, s.selectedCoupon)
}

// AddToCart upserts one unit of the product. A brand-new entry is gated on the
// remaining stock (stock minus everything already in the cart); incrementing
// an existing entry is gated on the absolute product stock. The two checks are
// deliberately distinct.
func (s *service) AddToCart(product models.Product) error {
	if catalog.RemainingStock(product, s.items) <= 0 {
		s.notifier.Push("Not enough stock!", enums.SeverityError)
		return pkgerrors.New(pkgerrors.CodeValidation, "not enough stock")
	}

	for i := range s.items {
		if s.items[i].Product.ID != product.ID {
			continue
		}
		if s.items[i].Quantity+1 > product.Stock {
			s.notifier.Push(fmt.Sprintf("Only %d in stock.", product.Stock), enums.SeverityError)
			return pkgerrors.New(pkgerrors.CodeValidation, "stock limit reached")
		}
		s.items[i].Quantity++
		s.notifier.Push("Added to cart.", enums.SeveritySuccess)
		return nil
	}

	s.items = append(s.items, models.CartItem{Product: product, Quantity: 1})
	s.notifier.Push("Added to cart.", enums.SeveritySuccess)
	return nil
}

// RemoveFromCart filters the item out. Removing an absent id is a silent
// no-op; no notification is emitted either way.
func (s *service) RemoveFromCart(productID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// UpdateQuantity sets the item quantity. A non-positive quantity delegates to
// removal; an unknown product is a silent no-op.
func (s *service) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return nil
	}

	product, known := s.products.Get(productID)
	if !known {
		return nil
	}

	if quantity > product.Stock {
		s.notifier.Push(fmt.Sprintf("Only %d in stock.", product.Stock), enums.SeverityError)
		return pkgerrors.New(pkgerrors.CodeValidation, "stock limit reached")
	}

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return nil
}

// ApplyCoupon validates eligibility against the cart with no coupon applied,
// then selects the coupon.
func (s *service) ApplyCoupon(coupon models.Coupon) error {
	if !s.engine.CanApplyCoupon(coupon, s.items) {
		s.notifier.Push("Percentage coupons require a minimum order of 10,000.", enums.SeverityError)
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon not eligible")
	}

	selected := coupon
	s.selectedCoupon = &selected
	s.notifier.Push("Coupon applied.", enums.SeveritySuccess)
	return nil
}

// SetSelectedCoupon overrides the selection without validation. Used for
// manual clear/select from the UI.
func (s *service) SetSelectedCoupon(coupon *models.Coupon) {
	if coupon == nil {
		s.selectedCoupon = nil
		return
	}
	selected := *coupon
	s.selectedCoupon = &selected
}

// CompleteOrder emits the completion notification with a fresh order number,
// then unconditionally clears the cart and the selected coupon. Stock is never
// decremented in the catalog; reservations live only in cart contents.
func (s *service) CompleteOrder() string {
	orderNumber := s.orders.NewOrderNumber()
	s.notifier.Push(fmt.Sprintf("Order completed. Order number: %s", orderNumber), enums.SeveritySuccess)
	s.items = nil
	s.selectedCoupon = nil
	return orderNumber
}

// Replace swaps the cart contents in. Used for rehydration; no notification.
func (s *service) Replace(items []models.CartItem) {
	s.items = make([]models.CartItem, len(items))
	copy(s.items, items)
}
