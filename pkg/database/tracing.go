package database

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bloodwraith8851/gocart/pkg/database"

// slowQueryPolicy is swapped atomically so repositories never contend on a
// lock in the query hot path.
type slowQueryPolicy struct {
	threshold time.Duration
	logger    *slog.Logger
}

var slowQuery atomic.Pointer[slowQueryPolicy]

// SetSlowQueryLogging turns on warn-level logging for queries that run longer
// than threshold. Pass a zero threshold or nil logger to turn it off.
func SetSlowQueryLogging(threshold time.Duration, logger *slog.Logger) {
	if threshold <= 0 || logger == nil {
		slowQuery.Store(nil)
		return
	}
	slowQuery.Store(&slowQueryPolicy{threshold: threshold, logger: logger})
}

// TraceQuery opens a client span around a repository query and returns the
// context to run it under plus a completion callback:
//
//	ctx, end := database.TraceQuery(ctx, "GetStore", query)
//	defer func() { end(err) }()
//
// The callback records the error on the span, closes it, and applies the slow
// query policy configured through SetSlowQueryLogging.
func TraceQuery(ctx context.Context, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		elapsed := time.Since(start)
		span.SetAttributes(attribute.Int64("db.duration_ms", elapsed.Milliseconds()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		policy := slowQuery.Load()
		if policy == nil || elapsed < policy.threshold {
			return
		}
		attrs := []any{
			slog.String("operation", operation),
			slog.String("statement", statement),
			slog.Duration("duration", elapsed),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		policy.logger.WarnContext(ctx, "slow query detected", attrs...)
	}
}
