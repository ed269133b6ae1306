package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bloodwraith8851/gocart/pkg/logger"
)

const correlationHeader = "X-Correlation-ID"

// accessRecorder captures the status code and body size of a response so the
// access log line can report them after the handler returns.
type accessRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (ar *accessRecorder) WriteHeader(code int) {
	ar.status = code
	ar.ResponseWriter.WriteHeader(code)
}

func (ar *accessRecorder) Write(b []byte) (int, error) {
	n, err := ar.ResponseWriter.Write(b)
	ar.written += n
	return n, err
}

// RequestLogging emits one access log line per request and threads a
// correlation ID through the request. The ID is taken from the
// X-Correlation-ID header when the caller supplies one, otherwise a fresh UUID
// is minted; either way it is stored in the request context and echoed back on
// the response so clients can quote it in support requests.
func RequestLogging(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			cid := r.Header.Get(correlationHeader)
			if cid == "" {
				cid = uuid.New().String()
			}
			ctx := logger.WithCorrelationID(r.Context(), cid)
			w.Header().Set(correlationHeader, cid)

			rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			l.InfoContext(ctx, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", rec.written),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.String("correlation_id", cid),
			)
		})
	}
}
