// Package server exposes the HTTP API: document ingestion, the chat
// endpoint, health and the debug endpoints that exercise single pipeline
// stages in isolation.
//
// All mutating and debug endpoints sit behind a shared API key. Every
// request carries a correlation id, taken from the X-Request-ID header when
// the caller supplies one and generated otherwise; the id is echoed back in
// the response and attached to logs and pipeline errors.
package server
