package tracer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span with the given name and returns an updated
// context containing the span, along with the span itself.
//
// The created span becomes a child of any span that exists in the provided
// context; without one, a new root span is created.
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "retrieval")
//	defer span.End()
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	tracer := t.tracer.Tracer("")
	ctx, span := tracer.Start(ctx, name)
	return ctx, span
}

// RecordErrorOnSpan records an error on a span and sets its status to error,
// so failed operations are visible in trace backends.
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetStringAttribute attaches a string attribute to a span.
func (t *Tracer) SetStringAttribute(span traceSpan.Span, key, value string) {
	span.SetAttributes(attribute.String(key, value))
}

// SetIntAttribute attaches an integer attribute to a span.
func (t *Tracer) SetIntAttribute(span traceSpan.Span, key string, value int) {
	span.SetAttributes(attribute.Int(key, value))
}
