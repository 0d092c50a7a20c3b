// Package tracer provides distributed tracing for the RAG API via
// OpenTelemetry.
//
// It wraps the OpenTelemetry TracerProvider behind a small Tracer type with
// convenience methods for starting spans, recording errors and attaching
// attributes. When export is enabled, spans are shipped to an OTLP/HTTP
// collector (endpoint taken from the standard OTEL_EXPORTER_OTLP_* envs).
//
// The chat orchestrator opens one span per pipeline stage, so a single chat
// request shows up as a trace with retrieval, prompt and generation children.
package tracer
