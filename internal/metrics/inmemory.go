package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Operations          map[string]uint64 // keyed by "op/outcome"
	OperationDurationNs int64
	HTTPRequests        uint64
	Logins              map[string]uint64
	ItemsCreated        uint64
	ItemsUpdated        uint64
	ItemsDeleted        uint64
	RentalsRequested    map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu               sync.Mutex
	operations       map[string]uint64
	logins           map[string]uint64
	rentalsRequested map[string]uint64

	operationDurationNs int64
	httpRequests        uint64
	itemsCreated        uint64
	itemsUpdated        uint64
	itemsDeleted        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		operations:       make(map[string]uint64),
		logins:           make(map[string]uint64),
		rentalsRequested: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Operations:          copyCounts(m.operations),
		OperationDurationNs: atomic.LoadInt64(&m.operationDurationNs),
		HTTPRequests:        atomic.LoadUint64(&m.httpRequests),
		Logins:              copyCounts(m.logins),
		ItemsCreated:        atomic.LoadUint64(&m.itemsCreated),
		ItemsUpdated:        atomic.LoadUint64(&m.itemsUpdated),
		ItemsDeleted:        atomic.LoadUint64(&m.itemsDeleted),
		RentalsRequested:    copyCounts(m.rentalsRequested),
	}
}

// ObserveOperation counts an operation by outcome and adds its duration.
func (m *InMemoryRecorder) ObserveOperation(op, outcome string, duration time.Duration) {
	m.mu.Lock()
	m.operations[op+"/"+outcome]++
	m.mu.Unlock()
	atomic.AddInt64(&m.operationDurationNs, duration.Nanoseconds())
}

// ObserveHTTPRequest counts an HTTP request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	atomic.AddUint64(&m.httpRequests, 1)
}

// IncLogin counts a login attempt by outcome.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[outcome]++
}

// IncItemCreated increments item created counter.
func (m *InMemoryRecorder) IncItemCreated() {
	atomic.AddUint64(&m.itemsCreated, 1)
}

// IncItemUpdated increments item updated counter.
func (m *InMemoryRecorder) IncItemUpdated() {
	atomic.AddUint64(&m.itemsUpdated, 1)
}

// IncItemDeleted increments item deleted counter.
func (m *InMemoryRecorder) IncItemDeleted() {
	atomic.AddUint64(&m.itemsDeleted, 1)
}

// IncRentalRequested counts a rental request by outcome.
func (m *InMemoryRecorder) IncRentalRequested(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentalsRequested[outcome]++
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
