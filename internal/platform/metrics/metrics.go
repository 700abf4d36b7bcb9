package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	InventoryRecorded     prometheus.Counter
	IntakeDuration        prometheus.Histogram
	NotificationsSent     *prometheus.CounterVec
	NotificationFailure   *prometheus.CounterVec
	UnitsWithoutResidents prometheus.Counter
	ItemsCollected        prometheus.Counter
	TokensIssued          prometheus.Counter
	ResidentsRegistered   prometheus.Counter
}

// New creates and registers all Prometheus metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics against reg; tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		InventoryRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "respass_inventory_recorded_total",
			Help: "Total number of parcel inventory rows recorded by intake",
		}),
		IntakeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "respass_intake_duration_seconds",
			Help:    "Latency of parcel intake including notification triggers",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		NotificationsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "respass_notifications_triggered_total",
			Help: "Notification workflow triggers by workflow key",
		}, []string{"workflow"}),
		NotificationFailure: f.NewCounterVec(prometheus.CounterOpts{
			Name: "respass_notification_failures_total",
			Help: "Failed notification workflow triggers by workflow key",
		}, []string{"workflow"}),
		UnitsWithoutResidents: f.NewCounter(prometheus.CounterOpts{
			Name: "respass_intake_units_without_residents_total",
			Help: "Unmatched building/unit pairs with no resident to fall back to",
		}),
		ItemsCollected: f.NewCounter(prometheus.CounterOpts{
			Name: "respass_items_collected_total",
			Help: "Total number of inventory rows transitioned to collected",
		}),
		TokensIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "respass_tokens_issued_total",
			Help: "Total number of signed credentials issued",
		}),
		ResidentsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "respass_residents_registered_total",
			Help: "Total number of resident identities registered",
		}),
	}
}

func (m *Metrics) ObserveIntake(rows int, start time.Time) {
	if m == nil {
		return
	}
	m.InventoryRecorded.Add(float64(rows))
	m.IntakeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementNotification(workflow string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.NotificationFailure.WithLabelValues(workflow).Inc()
		return
	}
	m.NotificationsSent.WithLabelValues(workflow).Inc()
}

func (m *Metrics) IncrementUnitsWithoutResidents() {
	if m == nil {
		return
	}
	m.UnitsWithoutResidents.Inc()
}

func (m *Metrics) AddItemsCollected(n int) {
	if m == nil {
		return
	}
	m.ItemsCollected.Add(float64(n))
}

func (m *Metrics) IncrementTokensIssued() {
	if m == nil {
		return
	}
	m.TokensIssued.Inc()
}

func (m *Metrics) IncrementResidentsRegistered() {
	if m == nil {
		return
	}
	m.ResidentsRegistered.Inc()
}
