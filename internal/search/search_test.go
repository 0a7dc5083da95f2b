package search

import (
	"sync"
	"testing"
	"time"

	"github.com/hanbit-commerce/storefront/pkg/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Wireless Mouse", Description: "Quiet clicks"},
		{ID: "p2", Name: "Keyboard", Description: "Mechanical, wireless"},
		{ID: "p3", Name: "Monitor", Description: "27 inch"},
	}
}

func TestFilterMatchesNameAndDescription(t *testing.T) {
	t.Parallel()

	got := Filter(sampleProducts(), "WIRELESS")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected p1 and p2, got %+v", got)
	}
}

func TestFilterEmptyTermReturnsEverything(t *testing.T) {
	t.Parallel()

	got := Filter(sampleProducts(), "   ")
	if len(got) != 3 {
		t.Fatalf("expected all products, got %+v", got)
	}
}

func TestFilterNoMatch(t *testing.T) {
	t.Parallel()

	if got := Filter(sampleProducts(), "printer"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestDebouncerDeliversOnlyLastTerm(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var delivered []string
	d := NewDebouncer(30*time.Millisecond, func(term string) {
		mu.Lock()
		delivered = append(delivered, term)
		mu.Unlock()
	})
	defer d.Stop()

	d.Trigger("m")
	d.Trigger("mo")
	d.Trigger("mouse")

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(delivered)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced call never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 || delivered[0] != "mouse" {
		t.Fatalf("expected single delivery of last term, got %+v", delivered)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	fired := false
	d := NewDebouncer(30*time.Millisecond, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.Trigger("query")
	d.Stop()
	d.Trigger("after stop")

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Fatal("stopped debouncer must not fire")
	}
}
