package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bloodwraith8851/gocart/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context so handlers and
// services can log with correlation_id, user_id, trace_id, and span_id already
// attached. Retrieve it downstream with logger.FromContext.
//
// Mount this after RequestLogging and Tracing, which populate the correlation
// ID and the span context this middleware reads.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if uid := requestUserID(r); uid != "" {
				ctx = logger.WithUserID(ctx, uid)
			}
			scoped := logger.WithContext(ctx, base)
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, scoped)))
		})
	}
}

// requestUserID resolves the acting user: the auth middleware's context entry
// wins, with the X-User-ID header as a fallback for internal callers that
// bypass token auth.
func requestUserID(r *http.Request) string {
	if uid := UserIDFromContext(r.Context()); uid != "" {
		return uid
	}
	return r.Header.Get("X-User-ID")
}
