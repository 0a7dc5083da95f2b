package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics records domain operation outcomes and the active notification set.
type ShopMetrics struct {
	operations          *prometheus.CounterVec
	activeNotifications prometheus.Gauge
}

// NewShopMetrics registers the shop metrics on the provided registerer.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_operations_total",
		Help: "Shop operations by name and outcome.",
	}, []string{"operation", "outcome"})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shop_notifications_active",
		Help: "Number of notifications currently displayed.",
	})
	reg.MustRegister(operations, active)
	return &ShopMetrics{
		operations:          operations,
		activeNotifications: active,
	}
}

// IncSuccess increments the success counter for the named operation.
func (m *ShopMetrics) IncSuccess(operation string) {
	m.inc(operation, "success")
}

// IncFailure increments the failure counter for the named operation.
func (m *ShopMetrics) IncFailure(operation string) {
	m.inc(operation, "failure")
}

func (m *ShopMetrics) inc(operation, outcome string) {
	if m == nil || m.operations == nil {
		return
	}
	if operation == "" {
		operation = "unknown"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// SetActiveNotifications records the current size of the notification set.
func (m *ShopMetrics) SetActiveNotifications(count int) {
	if m == nil || m.activeNotifications == nil {
		return
	}
	m.activeNotifications.Set(float64(count))
}
