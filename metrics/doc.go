// Package metrics exposes Prometheus metrics for the RAG API.
//
// Each process owns an isolated prometheus.Registry wrapped with a constant
// "service" label and served by a dedicated HTTP server on /metrics. The
// package pre-registers the domain metrics the service reports on:
//
//   - rag_api_ingested_total         documents accepted by the ingest endpoints
//   - rag_api_chats_total            successfully answered chat requests
//   - rag_api_errors_total{endpoint} failed requests per endpoint
//   - rag_api_stage_duration_seconds{stage} chat pipeline stage latency
//   - rag_api_request_duration_seconds{endpoint} HTTP request latency
//
// These counters are deliberately the only mutable state shared across
// requests; the chat pipeline itself stays stateless and reports through
// the Collector interface.
package metrics
