package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/pagination/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metrics are created and registered lazily on first use, so constructing a
// collector that is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	navigations        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	syncs              *prometheus.CounterVec
	evictions          prometheus.Counter
	refills            prometheus.Counter
	windowSize         prometheus.Gauge
	totalRecords       prometheus.Gauge
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "pagination" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "pagination"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.navigations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "navigation",
			Name:      "attempts_total",
			Help:      "Total navigation attempts by target and outcome.",
		}, []string{"target", "success"})

		p.validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "state",
			Name:      "validation_failures_total",
			Help:      "Total rejected candidate states by error kind (type, range).",
		}, []string{"kind"})

		p.syncs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sync",
			Name:      "events_total",
			Help:      "Total structural events synchronized by kind and source container.",
		}, []string{"kind", "source"})

		p.evictions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sync",
			Name:      "evictions_total",
			Help:      "Total overflowing window items evicted after an insert.",
		})

		p.refills = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sync",
			Name:      "refills_total",
			Help:      "Total window refills after a remove.",
		})

		p.windowSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "window",
			Name:      "items",
			Help:      "Current number of items in the window.",
		})

		p.totalRecords = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "state",
			Name:      "total_records",
			Help:      "Current number of records in the full collection.",
		})

		p.reg.MustRegister(p.navigations)
		p.reg.MustRegister(p.validationFailures)
		p.reg.MustRegister(p.syncs)
		p.reg.MustRegister(p.evictions)
		p.reg.MustRegister(p.refills)
		p.reg.MustRegister(p.windowSize)
		p.reg.MustRegister(p.totalRecords)
	})
}

// NavigationMetrics implementation

// RecordNavigation counts a navigation attempt.
func (p *PrometheusCollector) RecordNavigation(target string, success bool) {
	p.ensureRegistered()
	p.navigations.WithLabelValues(target, strconv.FormatBool(success)).Inc()
}

// RecordValidationFailure counts a rejected candidate state.
func (p *PrometheusCollector) RecordValidationFailure(kind string) {
	p.ensureRegistered()
	p.validationFailures.WithLabelValues(kind).Inc()
}

// SyncMetrics implementation

// RecordSync counts a synchronized event.
func (p *PrometheusCollector) RecordSync(kind, source string) {
	p.ensureRegistered()
	p.syncs.WithLabelValues(kind, source).Inc()
}

// RecordEviction counts an eviction.
func (p *PrometheusCollector) RecordEviction() {
	p.ensureRegistered()
	p.evictions.Inc()
}

// RecordRefill counts a refill.
func (p *PrometheusCollector) RecordRefill() {
	p.ensureRegistered()
	p.refills.Inc()
}

// RecordWindowSize sets the window size gauge.
func (p *PrometheusCollector) RecordWindowSize(n int) {
	p.ensureRegistered()
	p.windowSize.Set(float64(n))
}

// RecordTotalRecords sets the total records gauge.
func (p *PrometheusCollector) RecordTotalRecords(n int) {
	p.ensureRegistered()
	p.totalRecords.Set(float64(n))
}
