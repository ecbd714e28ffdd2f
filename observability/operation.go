package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one client call with a span and the operation metrics.
type Operation struct {
	kind     string
	typeName string
	start    time.Time
	span     trace.Span
	metrics  *Metrics
}

// StartOperation starts the span for a call of kind on typeName and counts
// it as in flight. metrics may be nil.
func StartOperation(ctx context.Context, tracer trace.Tracer, metrics *Metrics, kind, typeName string) (context.Context, *Operation) {
	ctx, span := tracer.Start(ctx, SpanName(kind),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrKind, kind),
			attribute.String(AttrTypeName, typeName),
		),
	)
	metrics.RecordStart(ctx, kind)
	return ctx, &Operation{
		kind:     kind,
		typeName: typeName,
		start:    time.Now(),
		span:     span,
		metrics:  metrics,
	}
}

// SetRequest records the built request on the span.
func (o *Operation) SetRequest(method, url, requestID string) {
	o.span.SetAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrURL, url),
	)
	if requestID != "" {
		o.span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}
}

// End finishes the span and records the outcome. statusCode is zero when no
// response was received; code is empty on success.
func (o *Operation) End(ctx context.Context, statusCode int, code string, err error) {
	if statusCode > 0 {
		o.span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}
	outcome := OutcomeOK
	if code != "" {
		outcome = code
		o.span.SetAttributes(attribute.String(AttrErrorCode, code))
		if err != nil {
			o.span.RecordError(err)
			o.span.SetStatus(codes.Error, err.Error())
		} else {
			o.span.SetStatus(codes.Error, code)
		}
	} else {
		o.span.SetStatus(codes.Ok, "")
	}
	o.span.End()
	o.metrics.RecordEnd(ctx, o.kind, o.typeName, outcome, time.Since(o.start))
}

// Duration returns the elapsed time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.start)
}
