package ids

import (
	"strings"
	"testing"
)

func TestNewIDIsUnique(t *testing.T) {
	t.Parallel()

	gen := New()
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	t.Parallel()

	gen := New()
	num := gen.NewOrderNumber()
	if !strings.HasPrefix(num, "ORD-") {
		t.Fatalf("expected ORD- prefix, got %q", num)
	}
	if len(num) != len("ORD-")+8 {
		t.Fatalf("unexpected order number length: %q", num)
	}
	if num == gen.NewOrderNumber() {
		t.Fatal("order numbers should not repeat")
	}
}
