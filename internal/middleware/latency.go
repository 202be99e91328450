package middleware

import (
	"net/http"

	"github.com/rentloop/rentloop/internal/latency"
)

// Latency delays a route by the simulator's delay for op before calling the
// handler. A client that disconnects during the wait gets no response and the
// handler never runs.
func Latency(sim *latency.Simulator, op latency.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sim == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sim.Wait(r.Context(), op); err != nil {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
