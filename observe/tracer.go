package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CallMeta carries the identifiers attached to spans for one database call.
type CallMeta struct {
	Tool      string // Tool name executing the call (required)
	RequestID string // Per-call request id (optional)
	SessionID string // Session the call is attributed to (optional)
}

// SpanName returns the deterministic span name for this call.
// Format: call.exec.<tool>
func (m CallMeta) SpanName() string {
	return "call.exec." + m.Tool
}

// ProbeSpanName is the span name for credential validation probes.
const ProbeSpanName = "auth.probe"

// Tracer wraps OpenTelemetry tracing with call-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartCall starts a span for one database call.
	StartCall(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// StartProbe starts a span for one credential validation probe. The
	// scheme is recorded; the credential never is.
	StartProbe(ctx context.Context, scheme string) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &tracerImpl{tracer: tracenoop.NewTracerProvider().Tracer("noop")}
}

// StartCall starts a span with call metadata as attributes.
func (t *tracerImpl) StartCall(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("call.tool", meta.Tool),
	}
	if meta.RequestID != "" {
		attrs = append(attrs, attribute.String("call.request_id", meta.RequestID))
	}
	if meta.SessionID != "" {
		attrs = append(attrs, attribute.String("call.session_id", meta.SessionID))
	}
	return t.tracer.Start(ctx, meta.SpanName(), trace.WithAttributes(attrs...))
}

// StartProbe starts a span for a credential probe.
func (t *tracerImpl) StartProbe(ctx context.Context, scheme string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, ProbeSpanName,
		trace.WithAttributes(attribute.String("auth.scheme", scheme)))
}

// EndSpan ends the span, recording error status if err is non-nil.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Ensure tracerImpl implements Tracer
var _ Tracer = (*tracerImpl)(nil)
