// Package metrics defines the observability contract for the demo server:
// HTTP request accounting and preference store operation accounting.
// Implementations must be safe for concurrent use.
package metrics

import "time"

// Collector receives measurements from the HTTP layer and the preference
// store.
type Collector interface {
	// RecordRequest records one handled HTTP request.
	RecordRequest(route, method string, status int, duration time.Duration)

	// RecordStoreOp records one preference store operation.
	RecordStoreOp(store, operation string, success bool, duration time.Duration)
}

// NoOpCollector discards all measurements. Useful for tests and for
// running without a metrics backend.
type NoOpCollector struct{}

func (NoOpCollector) RecordRequest(route, method string, status int, duration time.Duration) {}

func (NoOpCollector) RecordStoreOp(store, operation string, success bool, duration time.Duration) {}
