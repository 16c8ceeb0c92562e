package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout puts a deadline on the request context. It writes nothing itself:
// handlers turn context.DeadlineExceeded into their own 504 response.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), d)
			defer cancel()
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
