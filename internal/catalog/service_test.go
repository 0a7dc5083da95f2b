package catalog

import (
	"fmt"
	"testing"

	"github.com/hanbit-commerce/storefront/pkg/enums"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

type stubIDs struct{ next int }

func (s *stubIDs) NewID() string {
	s.next++
	return fmt.Sprintf("p%d", s.next)
}

type recordedNotification struct {
	message  string
	severity enums.Severity
}

type stubNotifier struct {
	pushed []recordedNotification
}

func (s *stubNotifier) Push(message string, severity enums.Severity) {
	s.pushed = append(s.pushed, recordedNotification{message: message, severity: severity})
}

func newTestService(t *testing.T, seed []models.Product) (Service, *stubNotifier) {
	t.Helper()
	notifier := &stubNotifier{}
	svc, err := NewService(seed, &stubIDs{}, notifier)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, notifier
}

func TestRemainingStock(t *testing.T) {
	t.Parallel()

	p := models.Product{ID: "p1", Stock: 5}
	cart := []models.CartItem{
		{Product: p, Quantity: 3},
		{Product: models.Product{ID: "p2", Stock: 9}, Quantity: 9},
	}

	if got := RemainingStock(p, cart); got != 2 {
		t.Fatalf("expected remaining 2, got %d", got)
	}
	if got := RemainingStock(p, nil); got != 5 {
		t.Fatalf("expected full stock without cart, got %d", got)
	}

	over := []models.CartItem{{Product: p, Quantity: 9}}
	if got := RemainingStock(p, over); got != 0 {
		t.Fatalf("remaining stock must never be negative, got %d", got)
	}
}

func TestAddAssignsIDAndNotifies(t *testing.T) {
	t.Parallel()

	svc, notifier := newTestService(t, nil)
	created := svc.Add(CreateProductInput{Name: "Widget", Price: 1500, Stock: 4})

	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(svc.List()) != 1 {
		t.Fatalf("expected 1 product, got %d", len(svc.List()))
	}
	if len(notifier.pushed) != 1 || notifier.pushed[0].severity != enums.SeveritySuccess {
		t.Fatalf("expected one success notification, got %+v", notifier.pushed)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	t.Parallel()

	seed := []models.Product{{ID: "p1", Name: "Old", Price: 100, Stock: 2, Description: "keep me"}}
	svc, notifier := newTestService(t, seed)

	name := "New"
	price := 250
	svc.Update("p1", UpdateProductInput{Name: &name, Price: &price})

	got, ok := svc.Get("p1")
	if !ok {
		t.Fatal("product disappeared")
	}
	if got.Name != "New" || got.Price != 250 {
		t.Fatalf("merge failed: %+v", got)
	}
	if got.Description != "keep me" || got.Stock != 2 {
		t.Fatalf("untouched fields must survive: %+v", got)
	}
	if len(notifier.pushed) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.pushed))
	}
}

func TestUpdateUnknownIDIsSilent(t *testing.T) {
	t.Parallel()

	svc, notifier := newTestService(t, []models.Product{{ID: "p1", Name: "A"}})

	name := "B"
	svc.Update("ghost", UpdateProductInput{Name: &name})

	if got, _ := svc.Get("p1"); got.Name != "A" {
		t.Fatalf("unrelated product mutated: %+v", got)
	}
	if len(notifier.pushed) != 0 {
		t.Fatalf("unknown id must not notify, got %+v", notifier.pushed)
	}
}

func TestDeleteNotifiesUnconditionally(t *testing.T) {
	t.Parallel()

	svc, notifier := newTestService(t, []models.Product{{ID: "p1"}})

	svc.Delete("p1")
	if len(svc.List()) != 0 {
		t.Fatal("expected empty catalog")
	}

	svc.Delete("p1")
	if len(notifier.pushed) != 2 {
		t.Fatalf("delete must notify even without a match, got %d notifications", len(notifier.pushed))
	}
}

func TestReplaceDoesNotNotify(t *testing.T) {
	t.Parallel()

	svc, notifier := newTestService(t, nil)
	svc.Replace([]models.Product{{ID: "p1"}, {ID: "p2"}})

	if len(svc.List()) != 2 {
		t.Fatalf("expected 2 products, got %d", len(svc.List()))
	}
	if len(notifier.pushed) != 0 {
		t.Fatal("rehydration must be silent")
	}
}
