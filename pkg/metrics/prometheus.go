package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TripsChecked      prometheus.Counter
	NotificationsSent prometheus.Counter
	ProviderErrors    prometheus.Counter
	BatchDuration     prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsFor(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsFor creates new prometheus metrics on the given registerer
func NewMetricsFor(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TripsChecked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_checked_total",
			Help:      "The total number of trips whose flight status was checked",
		}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of status-change notification batches sent",
		}),
		ProviderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "The total number of failed flight-status fetches",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_pass_duration_seconds",
			Help:      "Time taken by one due-trip batch pass",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
