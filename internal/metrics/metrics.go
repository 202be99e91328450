// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Operation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Client operation metrics. op is the operation name, outcome is
	// OutcomeSuccess or the wire error code of the failure.
	ObserveOperation(op, outcome string, duration time.Duration)

	// HTTP surface metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Marketplace events
	IncLogin(outcome string)
	IncItemCreated()
	IncItemUpdated()
	IncItemDeleted()
	IncRentalRequested(outcome string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
