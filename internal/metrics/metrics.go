// Package metrics exposes Prometheus collectors for checkout and fulfilment.
// A nil *Storefront is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeCanceled = "canceled"
	OutcomeRejected = "rejected"
)

type Storefront struct {
	phaseDuration *prometheus.HistogramVec
	checkouts     *prometheus.CounterVec
	courierSyncs  *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	apiRequests   *prometheus.CounterVec
}

// NewStorefront registers the storefront collectors on reg.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	phaseDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_phase_duration_seconds",
		Help:    "Time spent in each checkout phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	courierSyncs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_sync_total",
		Help: "Courier sync attempts by courier and outcome.",
	}, []string{"courier", "outcome"})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status overwrites by target status.",
	}, []string{"status"})
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Logged /api/v1 requests by method and status.",
	}, []string{"method", "status"})
	reg.MustRegister(phaseDuration, checkouts, courierSyncs, statusChanges, apiRequests)
	return &Storefront{
		phaseDuration: phaseDuration,
		checkouts:     checkouts,
		courierSyncs:  courierSyncs,
		statusChanges: statusChanges,
		apiRequests:   apiRequests,
	}
}

func (m *Storefront) ObservePhase(phase string, d time.Duration) {
	if m == nil || m.phaseDuration == nil {
		return
	}
	m.phaseDuration.WithLabelValues(normalizeLabel(phase)).Observe(d.Seconds())
}

func (m *Storefront) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Storefront) IncCourierSync(courier, outcome string) {
	if m == nil || m.courierSyncs == nil {
		return
	}
	m.courierSyncs.WithLabelValues(normalizeLabel(courier), normalizeLabel(outcome)).Inc()
}

func (m *Storefront) IncStatusChange(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *Storefront) IncAPIRequest(method, status string) {
	if m == nil || m.apiRequests == nil {
		return
	}
	m.apiRequests.WithLabelValues(normalizeLabel(method), normalizeLabel(status)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
