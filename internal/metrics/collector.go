// Package metrics defines the domain metrics the services report and a
// Prometheus backed implementation of them.
package metrics

import (
	"time"

	apperrors "mcacrm/internal/errors"
)

// Collector receives service level measurements.
type Collector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
	// RecordAmount adds a money movement, e.g. "funded" or "collected".
	RecordAmount(kind string, amount float64)
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordOperationDuration(string, time.Duration) {}
func (NoopCollector) RecordOperationResult(string, string)          {}
func (NoopCollector) RecordCacheHit(string)                         {}
func (NoopCollector) RecordCacheMiss(string)                        {}
func (NoopCollector) RecordAmount(string, float64)                  {}

// OrNoop returns c, or a NoopCollector when c is nil.
func OrNoop(c Collector) Collector {
	if c == nil {
		return NoopCollector{}
	}
	return c
}

// Observe records the duration and outcome of an operation. It is meant
// to be deferred with a pointer to the caller's named error result.
func Observe(c Collector, operation string, started time.Time, err *error) {
	c.RecordOperationDuration(operation, time.Since(started))
	c.RecordOperationResult(operation, Result(*err))
}

// Result classifies err for the result label.
func Result(err error) string {
	if err == nil {
		return "success"
	}
	if de, ok := apperrors.As(err); ok {
		return de.Kind.String()
	}
	return "error"
}
