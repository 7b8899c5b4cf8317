package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cricket-fantasy/internal/usecase")

// startSpan opens "usecase.<op>" only under an existing span, so background
// work started without a request does not produce orphan root spans.
func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, "usecase."+op, trace.WithAttributes(attrs...))
}

// failSpan marks the span failed for errors callers did not cause.
func failSpan(span trace.Span, err error) {
	if err == nil || isClientError(err) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
