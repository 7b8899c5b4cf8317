package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cricket-fantasy/internal/interfaces/httpapi")

// handlerSpan starts "httpapi.Handler.<name>" under the request span. Requests
// the tracing middleware filtered out have no parent and get a no-op span.
func handlerSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, "httpapi.Handler."+name,
		trace.WithAttributes(attribute.String("http.handler", name)),
	)
}
