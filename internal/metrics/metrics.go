package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Degradation reasons.
const (
	ReasonTimeout = "timeout"
	ReasonError   = "error"
)

// Request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

type Registry struct {
	reg              *prometheus.Registry
	RecordsEmitted   prometheus.Counter
	RecordsDegraded  *prometheus.CounterVec
	ProductLookupSec prometheus.Histogram
	Requests         *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	emitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "userorders_records_emitted_total"})
	degraded := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "userorders_records_degraded_total"}, []string{"reason"})
	lookup := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "userorders_product_lookup_seconds",
		Buckets: prometheus.DefBuckets,
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "userorders_requests_total"}, []string{"outcome"})

	r.MustRegister(emitted, degraded, lookup, requests)
	return &Registry{
		reg:              r,
		RecordsEmitted:   emitted,
		RecordsDegraded:  degraded,
		ProductLookupSec: lookup,
		Requests:         requests,
	}
}

// ObserveLookup records the wall time of one product lookup started at start.
func (r *Registry) ObserveLookup(start time.Time) {
	r.ProductLookupSec.Observe(time.Since(start).Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
