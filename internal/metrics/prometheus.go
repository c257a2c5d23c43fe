package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports Collector measurements as Prometheus series.
type PrometheusCollector struct {
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	amounts           *prometheus.CounterVec
}

// NewPrometheusCollector registers the domain series on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mcacrm",
				Name:      "operation_duration_seconds",
				Help:      "Duration of service operations.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		operationResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcacrm",
				Name:      "operations_total",
				Help:      "Service operations by outcome.",
			},
			[]string{"operation", "result"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcacrm",
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by key and outcome.",
			},
			[]string{"key", "outcome"},
		),
		amounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcacrm",
				Name:      "amount_dollars_total",
				Help:      "Money funded and collected.",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(c.operationDuration, c.operationResults, c.cacheLookups, c.amounts)
	return c
}

func (c *PrometheusCollector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

func (c *PrometheusCollector) RecordCacheHit(key string) {
	c.cacheLookups.WithLabelValues(key, "hit").Inc()
}

func (c *PrometheusCollector) RecordCacheMiss(key string) {
	c.cacheLookups.WithLabelValues(key, "miss").Inc()
}

func (c *PrometheusCollector) RecordAmount(kind string, amount float64) {
	if amount <= 0 {
		return
	}
	c.amounts.WithLabelValues(kind).Add(amount)
}
