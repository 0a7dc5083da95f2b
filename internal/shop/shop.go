// Package shop is the storefront facade. It wires the catalog, cart, coupon
// and notification services behind a single mutex so every operation runs to
// completion before the next one observes state, rehydrates that state from
// the snapshot store at startup, and writes snapshots back after each
// mutation without letting storage failures leak into shop behavior.
package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hanbit-commerce/storefront/internal/cart"
	"github.com/hanbit-commerce/storefront/internal/catalog"
	"github.com/hanbit-commerce/storefront/internal/coupons"
	"github.com/hanbit-commerce/storefront/internal/notifications"
	"github.com/hanbit-commerce/storefront/internal/search"
	"github.com/hanbit-commerce/storefront/pkg/config"
	"github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/metrics"
	"github.com/hanbit-commerce/storefront/pkg/models"
	"github.com/hanbit-commerce/storefront/pkg/persist"
	"github.com/hanbit-commerce/storefront/pkg/pricing"
)

// Options carries the shop's collaborators.
type Options struct {
	Log     *logger.Logger
	Store   persist.Store
	IDs     IDGenerator
	Metrics *metrics.ShopMetrics
	Shop    config.ShopConfig
	Persist config.PersistenceConfig
}

// IDGenerator provides entity ids and order numbers.
type IDGenerator interface {
	NewID() string
	NewOrderNumber() string
}

// Shop serializes every storefront operation behind one mutex.
type Shop struct {
	mu sync.Mutex

	log     *logger.Logger
	store   persist.Store
	metrics *metrics.ShopMetrics

	catalog catalog.Service
	coupons coupons.Service
	cart    cart.Service
	center  *notifications.Center

	writeTimeout time.Duration
	writes       chan snapshotWrite
	closed       bool
}

type snapshotWrite struct {
	key string
	raw []byte
}

// New builds the shop, rehydrating products, cart and coupons from the
// snapshot store. A missing or unreadable snapshot falls back to the seed
// data for that key; a corrupt one is additionally logged as an integrity
// error.
func New(ctx context.Context, opts Options) (*Shop, error) {
	if opts.Log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if opts.IDs == nil {
		return nil, fmt.Errorf("id generator required")
	}

	center, err := notifications.NewCenter(opts.Shop.NotificationTTL, opts.IDs)
	if err != nil {
		return nil, err
	}
	if opts.Metrics != nil {
		center.SetCountObserver(opts.Metrics.SetActiveNotifications)
	}

	catalogSvc, err := catalog.NewService(nil, opts.IDs, center)
	if err != nil {
		return nil, err
	}
	couponSvc, err := coupons.NewService(nil, center)
	if err != nil {
		return nil, err
	}
	engine := pricing.NewEngine(opts.Shop.CouponMinimumTotal)
	cartSvc, err := cart.NewService(catalogSvc, engine, center, opts.IDs)
	if err != nil {
		return nil, err
	}

	writeTimeout := opts.Persist.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 2 * time.Second
	}

	s := &Shop{
		log:          opts.Log,
		store:        opts.Store,
		metrics:      opts.Metrics,
		catalog:      catalogSvc,
		coupons:      couponSvc,
		cart:         cartSvc,
		center:       center,
		writeTimeout: writeTimeout,
		writes:       make(chan snapshotWrite, 64),
	}
	s.rehydrate(ctx)
	go s.writerLoop()
	return s, nil
}

// writerLoop applies snapshot writes in operation order so a slow save
// can never clobber a newer one.
func (s *Shop) writerLoop() {
	for w := range s.writes {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.store.Save(ctx, w.key, w.raw); err != nil {
			s.log.Error(ctx, "saving snapshot", errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("saving %q snapshot", w.key)))
		}
		cancel()
	}
}

func (s *Shop) rehydrate(ctx context.Context) {
	var products []models.Product
	if loadSnapshot(ctx, s, persist.KeyProducts, &products) {
		s.catalog.Replace(products)
	} else {
		s.catalog.Replace(defaultProducts())
	}

	var items []models.CartItem
	if loadSnapshot(ctx, s, persist.KeyCart, &items) {
		s.cart.Replace(items)
	}

	var registry []models.Coupon
	if loadSnapshot(ctx, s, persist.KeyCoupons, &registry) {
		s.coupons.Replace(registry)
	} else {
		s.coupons.Replace(defaultCoupons())
	}
}

// loadSnapshot reports whether the key held a decodable snapshot. All
// failure modes fall back to the seed; only corruption is worth logging.
func loadSnapshot[T any](ctx context.Context, s *Shop, key string, out *T) bool {
	raw, err := s.store.Load(ctx, key)
	if err != nil {
		if err != persist.ErrNotFound {
			s.log.Error(ctx, "loading snapshot", errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("loading %q snapshot", key)))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Error(ctx, "corrupt snapshot", errors.Wrap(errors.CodeIntegrity, err, fmt.Sprintf("decoding %q snapshot", key)))
		return false
	}
	return true
}

// persistSnapshot marshals under the caller's lock and hands the payload to
// the writer loop. Save failures never reach the caller.
func (s *Shop) persistSnapshot(key string, value any) {
	if s.closed {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error(context.Background(), "encoding snapshot", errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("encoding %q snapshot", key)))
		return
	}
	select {
	case s.writes <- snapshotWrite{key: key, raw: raw}:
	default:
		s.log.Error(context.Background(), "snapshot queue full", errors.New(errors.CodeDependency, fmt.Sprintf("dropping %q snapshot", key)))
	}
}

func (s *Shop) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.IncFailure(operation)
		return
	}
	s.metrics.IncSuccess(operation)
}

// Close stops the notification expiry timers and the snapshot writer.
func (s *Shop) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.writes)
	}
	s.mu.Unlock()
	s.center.Close()
}

// Products returns the catalog, optionally filtered by a search term.
func (s *Shop) Products(term string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return search.Filter(s.catalog.List(), term)
}

// Product looks a single product up by id.
func (s *Shop) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// RemainingStock is the product's stock minus what the cart already holds.
func (s *Shop) RemainingStock(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.Get(id)
	if !ok {
		return 0, errors.New(errors.CodeNotFound, fmt.Sprintf("product %q not found", id))
	}
	return catalog.RemainingStock(product, s.cart.Items()), nil
}

// AddProduct creates a product and persists the catalog.
func (s *Shop) AddProduct(input catalog.CreateProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.catalog.Add(input)
	s.persistSnapshot(persist.KeyProducts, s.catalog.List())
	s.observe("product_add", nil)
	return product
}

// UpdateProduct merges the provided fields into the product. Unknown ids
// are ignored.
func (s *Shop) UpdateProduct(id string, input catalog.UpdateProductInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog.Update(id, input)
	s.persistSnapshot(persist.KeyProducts, s.catalog.List())
	s.observe("product_update", nil)
}

// DeleteProduct removes the product. Cart lines referencing it survive.
func (s *Shop) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog.Delete(id)
	s.persistSnapshot(persist.KeyProducts, s.catalog.List())
	s.observe("product_delete", nil)
}

// CartItems returns the cart lines in insertion order.
func (s *Shop) CartItems() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// CartTotals prices the cart under the currently selected coupon.
func (s *Shop) CartTotals() models.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// SelectedCoupon returns the coupon applied to the cart, if any.
func (s *Shop) SelectedCoupon() *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SelectedCoupon()
}

// AddToCart adds one unit of the product to the cart.
func (s *Shop) AddToCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.Get(id)
	if !ok {
		err := errors.New(errors.CodeNotFound, fmt.Sprintf("product %q not found", id))
		s.observe("cart_add", err)
		return err
	}
	err := s.cart.AddToCart(product)
	if err == nil {
		s.persistSnapshot(persist.KeyCart, s.cart.Items())
	}
	s.observe("cart_add", err)
	return err
}

// RemoveFromCart drops the product's line from the cart.
func (s *Shop) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.RemoveFromCart(id)
	s.persistSnapshot(persist.KeyCart, s.cart.Items())
	s.observe("cart_remove", nil)
}

// UpdateQuantity sets the cart line to the requested quantity.
func (s *Shop) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.cart.UpdateQuantity(id, quantity)
	if err == nil {
		s.persistSnapshot(persist.KeyCart, s.cart.Items())
	}
	s.observe("cart_update_quantity", err)
	return err
}

// ApplyCoupon resolves the code against the registry and applies it to
// the cart.
func (s *Shop) ApplyCoupon(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon, ok := s.coupons.FindByCode(code)
	if !ok {
		err := errors.New(errors.CodeNotFound, fmt.Sprintf("coupon %q not found", coupons.NormalizeCode(code)))
		s.observe("coupon_apply", err)
		return err
	}
	err := s.cart.ApplyCoupon(coupon)
	s.observe("coupon_apply", err)
	return err
}

// ClearSelectedCoupon detaches the coupon from the cart without any
// notification.
func (s *Shop) ClearSelectedCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetSelectedCoupon(nil)
}

// CompleteOrder finalizes the order, clears the cart and selected coupon
// and returns the generated order number.
func (s *Shop) CompleteOrder() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderNumber := s.cart.CompleteOrder()
	s.persistSnapshot(persist.KeyCart, s.cart.Items())
	s.observe("order_complete", nil)
	return orderNumber
}

// Coupons returns the registry contents.
func (s *Shop) Coupons() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons.List()
}

// AddCoupon registers the coupon, rejecting duplicate codes.
func (s *Shop) AddCoupon(coupon models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.coupons.Add(coupon)
	if err == nil {
		s.persistSnapshot(persist.KeyCoupons, s.coupons.List())
	}
	s.observe("coupon_add", err)
	return err
}

// DeleteCoupon removes the coupon from the registry. A coupon already
// applied to the cart stays applied; the registry never owns the selection.
func (s *Shop) DeleteCoupon(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons.Delete(code)
	s.persistSnapshot(persist.KeyCoupons, s.coupons.List())
	s.observe("coupon_delete", nil)
}

// Notifications returns the active notifications in arrival order.
func (s *Shop) Notifications() []models.Notification {
	return s.center.List()
}

// DismissNotification removes the notification ahead of its expiry.
func (s *Shop) DismissNotification(id string) {
	s.center.Remove(id)
}
