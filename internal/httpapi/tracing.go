package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "thingsd/internal/httpapi"

	attrDecode    = "things.decode"
	attrImportant = "things.important_field"
)

// startSpan uses the global provider on every call so a provider installed
// after NewMux still receives spans.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
}
