package notifications

import (
	"fmt"
	"sync"
	"time"

	"github.com/hanbit-commerce/storefront/pkg/enums"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

// DefaultTTL is how long a notification stays visible unless dismissed.
const DefaultTTL = 3 * time.Second

type idGenerator interface {
	NewID() string
}

// Center holds the active notification set. Every notification expires on its
// own independently scheduled timer; manual dismissal cancels the pending
// timer, and a dismissal racing a firing timer never double-removes.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	ids      idGenerator
	active   []models.Notification
	timers   map[string]*time.Timer
	observer func(count int)
}

// NewCenter builds a notification center. A non-positive TTL falls back to the
// default.
func NewCenter(ttl time.Duration, gen idGenerator) (*Center, error) {
	if gen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		ids:    gen,
		timers: map[string]*time.Timer{},
	}, nil
}

// SetCountObserver registers a callback invoked with the active set size after
// every change. Used for metrics; may be nil.
func (c *Center) SetCountObserver(fn func(count int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// Push appends a notification and schedules its expiry. An empty severity
// defaults to success.
func (c *Center) Push(message string, severity enums.Severity) {
	if !severity.IsValid() {
		severity = enums.SeveritySuccess
	}

	c.mu.Lock()
	id := c.ids.NewID()
	c.active = append(c.active, models.Notification{
		ID:       id,
		Message:  message,
		Severity: severity,
	})
	c.timers[id] = time.AfterFunc(c.ttl, func() {
		c.Remove(id)
	})
	c.notifyObserver()
	c.mu.Unlock()
}

// Remove dismisses the notification and cancels its pending expiry. Removing
// an unknown id is a no-op.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer, known := c.timers[id]
	if !known {
		return
	}
	timer.Stop()
	delete(c.timers, id)

	kept := c.active[:0]
	for _, n := range c.active {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.active = kept
	c.notifyObserver()
}

// List returns a snapshot of the active set in insertion order.
func (c *Center) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close cancels every pending expiry timer.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
	c.notifyObserver()
}

// notifyObserver must run with the lock held.
func (c *Center) notifyObserver() {
	if c.observer != nil {
		c.observer(len(c.active))
	}
}
