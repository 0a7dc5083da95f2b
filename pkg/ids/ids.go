package ids

import (
	"strings"

	"github.com/google/uuid"
)

const orderPrefix = "ORD-"

// Generator hands out collision-resistant identifiers for products,
// notifications, and order numbers.
type Generator interface {
	NewID() string
	NewOrderNumber() string
}

type generator struct{}

// New returns the default UUID-backed generator.
func New() Generator {
	return generator{}
}

func (generator) NewID() string {
	return uuid.NewString()
}

// NewOrderNumber returns a short, display-friendly order number.
func (generator) NewOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return orderPrefix + raw[:8]
}
