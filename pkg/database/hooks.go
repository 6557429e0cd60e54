package database

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"journalapi/pkg/logger"
	"journalapi/pkg/metrics"
	"journalapi/pkg/tracing"
)

// Hook runs around every statement. BeforeQuery may return a derived context
// which is the one passed to the driver and to AfterQuery.
type Hook interface {
	BeforeQuery(ctx context.Context, stmt Statement) context.Context
	AfterQuery(ctx context.Context, stmt Statement, duration time.Duration, err error)
}

type hookChain []Hook

func (c hookChain) before(ctx context.Context, stmt Statement) context.Context {
	for _, h := range c {
		ctx = h.BeforeQuery(ctx, stmt)
	}
	return ctx
}

func (c hookChain) after(ctx context.Context, stmt Statement, d time.Duration, err error) {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].AfterQuery(ctx, stmt, d, err)
	}
}

// LogHook logs statements at debug level and slow ones as warnings. Arguments
// are never logged since they carry credentials.
type LogHook struct {
	Logger        logger.Logger
	SlowThreshold time.Duration
}

func (h LogHook) BeforeQuery(ctx context.Context, stmt Statement) context.Context {
	return ctx
}

func (h LogHook) AfterQuery(ctx context.Context, stmt Statement, d time.Duration, err error) {
	fields := map[string]interface{}{
		"operation":   stmt.Operation,
		"entity":      stmt.Entity,
		"duration_ms": d.Milliseconds(),
	}

	switch {
	case err != nil:
		fields["error"] = err.Error()
		h.Logger.WithContext(ctx).Debug("Statement failed", fields)
	case h.SlowThreshold > 0 && d > h.SlowThreshold:
		h.Logger.WarnContext(ctx, "Slow statement", fields)
	default:
		h.Logger.WithContext(ctx).Debug("Statement executed", fields)
	}
}

type MetricsHook struct{}

func (MetricsHook) BeforeQuery(ctx context.Context, stmt Statement) context.Context {
	return ctx
}

func (MetricsHook) AfterQuery(ctx context.Context, stmt Statement, d time.Duration, err error) {
	metrics.RecordDatabaseOperation(stmt.Operation, stmt.Entity, d, err)
}

type TracingHook struct{}

func (TracingHook) BeforeQuery(ctx context.Context, stmt Statement) context.Context {
	ctx, _ = tracing.StartSpan(ctx, "db."+stmt.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.operation", stmt.Operation),
			attribute.String("db.sql.table", stmt.Entity),
		),
	)
	return ctx
}

func (TracingHook) AfterQuery(ctx context.Context, stmt Statement, d time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "statement failed")
	}
	span.End()
}
