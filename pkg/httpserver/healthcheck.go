package httpserver

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler runs the given checks and reports 200 when all pass or 503
// with the first failure otherwise. Each invocation is bounded to keep the
// endpoint responsive when a dependency hangs.
func HealthHandler(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
