package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop/internal/latency"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		var fromCtx string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if _, err := uuid.Parse(fromCtx); err != nil {
			t.Errorf("request id %q is not a uuid: %v", fromCtx, err)
		}
		if got := rec.Header().Get(RequestIDHeader); got != fromCtx {
			t.Errorf("header = %q, context = %q", got, fromCtx)
		}
	})

	t.Run("reuses incoming header", func(t *testing.T) {
		t.Parallel()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-supplied")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "client-supplied" {
			t.Errorf("header = %q, want client-supplied", got)
		}
	})

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty) = %q", got)
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	handler := Recoverer(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body["code"])
	}
}

func TestLatency(t *testing.T) {
	t.Parallel()

	sim := latency.New(latency.Profile{latency.OpGetItem: 20 * time.Millisecond}, 1)

	t.Run("delays the handler", func(t *testing.T) {
		t.Parallel()

		handler := Latency(sim, latency.OpGetItem)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		start := time.Now()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/1", nil))

		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("elapsed = %v, want >= 20ms", elapsed)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("cancelled request skips the handler", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := Latency(sim, latency.OpGetItem)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/api/items/1", nil).WithContext(ctx)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if called {
			t.Error("handler ran after the request was cancelled")
		}
	})

	t.Run("nil simulator passes through", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := Latency(nil, latency.OpGetItem)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !called {
			t.Error("handler not called")
		}
	})
}
