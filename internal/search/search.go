// Package search filters the product list by a free-text term and
// coalesces rapid keystrokes into a single query through a trailing-edge
// debouncer.
package search

import (
	"strings"
	"sync"
	"time"

	"github.com/hanbit-commerce/storefront/pkg/models"
)

// DefaultDebounce is the delay applied between the last keystroke and
// the query actually running.
const DefaultDebounce = 500 * time.Millisecond

// Filter returns the products whose name or description contains term,
// case-insensitively. An empty or whitespace-only term returns every
// product unchanged.
func Filter(products []models.Product, term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}

// Debouncer runs a callback once the caller has been quiet for the
// configured delay. Each Trigger resets the clock, so only the last
// value in a burst is delivered.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
	fn      func(term string)
}

// NewDebouncer builds a debouncer invoking fn after delay of quiet.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, fn func(term string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn(term), replacing any pending invocation.
func (d *Debouncer) Trigger(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.fn == nil {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(term)
	})
}

// Stop cancels any pending invocation. The debouncer cannot be reused
// afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
