package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hanbit-commerce/storefront/internal/catalog"
	"github.com/hanbit-commerce/storefront/pkg/config"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/models"
	"github.com/hanbit-commerce/storefront/pkg/persist"
	"github.com/rs/zerolog"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, persist.ErrNotFound
	}
	return raw, nil
}

func (m *memoryStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func (s *seqIDs) NewOrderNumber() string {
	return "ORD-cafef00d"
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "storefront-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

func newTestShop(t *testing.T, store *memoryStore) *Shop {
	t.Helper()

	s, err := New(context.Background(), Options{
		Log:   testLogger(),
		Store: store,
		IDs:   &seqIDs{},
		Shop: config.ShopConfig{
			NotificationTTL:    time.Minute,
			CouponMinimumTotal: 10000,
		},
		Persist: config.PersistenceConfig{WriteTimeout: time.Second},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func waitForSnapshot(t *testing.T, store *memoryStore, key string) []byte {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if raw, ok := store.get(key); ok {
			return raw
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot for %q never written", key)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSeedsWhenStoreIsEmpty(t *testing.T) {
	t.Parallel()

	s := newTestShop(t, newMemoryStore())

	products := s.Products("")
	if len(products) != 3 || products[0].ID != "p1" {
		t.Fatalf("expected the three seed products, got %+v", products)
	}
	if len(s.CartItems()) != 0 {
		t.Fatal("expected an empty cart")
	}
	coupons := s.Coupons()
	if len(coupons) != 2 || coupons[0].Code != "AMOUNT5000" || coupons[1].Code != "PERCENT10" {
		t.Fatalf("expected the two seed coupons, got %+v", coupons)
	}
}

func TestNewRehydratesFromSnapshots(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	saved := []models.Product{{ID: "x1", Name: "Saved", Price: 500, Stock: 2}}
	raw, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := store.Save(context.Background(), persist.KeyProducts, raw); err != nil {
		t.Fatalf("save: %v", err)
	}

	s := newTestShop(t, store)
	products := s.Products("")
	if len(products) != 1 || products[0].ID != "x1" {
		t.Fatalf("expected the saved catalog, got %+v", products)
	}
}

func TestNewFallsBackOnCorruptSnapshot(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	if err := store.Save(context.Background(), persist.KeyProducts, []byte("{not json")); err != nil {
		t.Fatalf("save: %v", err)
	}

	s := newTestShop(t, store)
	if got := s.Products(""); len(got) != 3 {
		t.Fatalf("expected seed fallback, got %+v", got)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	t.Parallel()

	s := newTestShop(t, newMemoryStore())
	err := s.AddToCart("ghost")
	if err == nil {
		t.Fatal("expected an error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddToCartPersistsSnapshot(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	s := newTestShop(t, store)

	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	raw := waitForSnapshot(t, store, persist.KeyCart)
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 1 || items[0].Product.ID != "p1" || items[0].Quantity != 1 {
		t.Fatalf("unexpected snapshot: %+v", items)
	}
}

func TestApplyCouponByCode(t *testing.T) {
	t.Parallel()

	s := newTestShop(t, newMemoryStore())
	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.ApplyCoupon("unknown"); err == nil {
		t.Fatal("unknown code must be rejected")
	}

	if err := s.ApplyCoupon("  percent10 "); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := s.SelectedCoupon(); got == nil || got.Code != "PERCENT10" {
		t.Fatalf("expected PERCENT10 selected, got %+v", got)
	}
	if got := s.CartTotals().TotalAfterDiscount; got != 9000 {
		t.Fatalf("expected 9000 after discount, got %d", got)
	}
}

func TestCompleteOrderClearsAndPersists(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	s := newTestShop(t, store)
	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.ApplyCoupon("AMOUNT5000"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	orderNumber := s.CompleteOrder()
	if orderNumber == "" {
		t.Fatal("expected an order number")
	}
	if len(s.CartItems()) != 0 || s.SelectedCoupon() != nil {
		t.Fatal("cart and coupon must be cleared")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		raw, ok := store.get(persist.KeyCart)
		if ok {
			var items []models.CartItem
			if err := json.Unmarshal(raw, &items); err == nil && len(items) == 0 {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("empty cart snapshot never written")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestProductsFilterByTerm(t *testing.T) {
	t.Parallel()

	s := newTestShop(t, newMemoryStore())
	got := s.Products("premium")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected only p1, got %+v", got)
	}
}

func TestAdminProductLifecycle(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	s := newTestShop(t, store)

	created := s.AddProduct(catalog.CreateProductInput{Name: "New", Price: 100, Stock: 5})
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	price := 250
	s.UpdateProduct(created.ID, catalog.UpdateProductInput{Price: &price})
	got, ok := s.Product(created.ID)
	if !ok || got.Price != 250 {
		t.Fatalf("expected updated price, got %+v ok=%v", got, ok)
	}

	s.DeleteProduct(created.ID)
	if _, ok := s.Product(created.ID); ok {
		t.Fatal("expected product gone")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		raw, ok := store.get(persist.KeyProducts)
		if ok {
			var products []models.Product
			if err := json.Unmarshal(raw, &products); err == nil && len(products) == 3 {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("final catalog snapshot never written")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRemainingStockTracksCart(t *testing.T) {
	t.Parallel()

	s := newTestShop(t, newMemoryStore())
	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	remaining, err := s.RemainingStock("p1")
	if err != nil {
		t.Fatalf("RemainingStock: %v", err)
	}
	if remaining != 19 {
		t.Fatalf("expected 19, got %d", remaining)
	}

	if _, err := s.RemainingStock("ghost"); err == nil {
		t.Fatal("expected an error for an unknown product")
	}
}
