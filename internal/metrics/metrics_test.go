package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var (
	_ Recorder    = (*NoopRecorder)(nil)
	_ Recorder    = (*InMemoryRecorder)(nil)
	_ Recorder    = (*PrometheusRecorder)(nil)
	_ Snapshotter = (*InMemoryRecorder)(nil)
)

func TestInMemoryRecorder(t *testing.T) {
	t.Parallel()
	m := NewInMemory()

	m.ObserveOperation("login", OutcomeSuccess, time.Millisecond)
	m.ObserveOperation("login", "INVALID_CREDENTIALS", time.Millisecond)
	m.ObserveOperation("login", OutcomeSuccess, time.Millisecond)
	m.IncLogin(OutcomeSuccess)
	m.IncItemCreated()
	m.IncItemUpdated()
	m.IncItemUpdated()
	m.IncItemDeleted()
	m.IncRentalRequested("UNAVAILABLE")
	m.ObserveHTTPRequest("GET", "/api/items", 200, time.Millisecond)

	s := m.Snapshot()
	if s.Operations["login/success"] != 2 || s.Operations["login/INVALID_CREDENTIALS"] != 1 {
		t.Errorf("operations = %v", s.Operations)
	}
	if s.OperationDurationNs != int64(3*time.Millisecond) {
		t.Errorf("duration = %d", s.OperationDurationNs)
	}
	if s.ItemsCreated != 1 || s.ItemsUpdated != 2 || s.ItemsDeleted != 1 {
		t.Errorf("item counters = %+v", s)
	}
	if s.Logins[OutcomeSuccess] != 1 || s.RentalsRequested["UNAVAILABLE"] != 1 || s.HTTPRequests != 1 {
		t.Errorf("event counters = %+v", s)
	}

	s.Operations["login/success"] = 100
	if m.Snapshot().Operations["login/success"] != 2 {
		t.Error("snapshot aliases recorder state")
	}
}

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()
	p := NewPrometheus()

	p.ObserveOperation("list_items", OutcomeSuccess, 300*time.Millisecond)
	p.IncItemCreated()
	p.IncItemCreated()
	p.IncRentalRequested(OutcomeSuccess)
	p.ObserveHTTPRequest("GET", "/api/items", 200, time.Millisecond)

	if got := testutil.ToFloat64(p.operations.WithLabelValues("list_items", OutcomeSuccess)); got != 1 {
		t.Errorf("operations_total = %v", got)
	}
	if got := testutil.ToFloat64(p.itemEvents.WithLabelValues("created")); got != 2 {
		t.Errorf("item_events_total{created} = %v", got)
	}

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"rentloop_operations_total",
		"rentloop_rental_requests_total",
		`rentloop_http_requests_total{method="GET",route="/api/items",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
