package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the service collectors. A nil receiver or an instance
// built without a registry is safe to call, which keeps handlers testable.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	quotesCreated   prometheus.Counter
	quotesFailed    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	quotesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotes_created_total",
		Help: "Quotes persisted and rendered.",
	})
	quotesFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_failed_total",
		Help: "Quote builds that failed, by stage.",
	}, []string{"stage"})
	reg.MustRegister(requestDuration, quotesCreated, quotesFailed)

	return &Metrics{
		requestDuration: requestDuration,
		quotesCreated:   quotesCreated,
		quotesFailed:    quotesFailed,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) QuoteCreated() {
	if m == nil || m.quotesCreated == nil {
		return
	}
	m.quotesCreated.Inc()
}

func (m *Metrics) QuoteFailed(stage string) {
	if m == nil || m.quotesFailed == nil {
		return
	}
	m.quotesFailed.WithLabelValues(stage).Inc()
}
