package server

import (
	"net/http"
	"time"

	"github.com/Aleph-Alpha/rag-api/requestid"
)

const (
	apiKeyHeader    = "X-API-Key"
	requestIDHeader = "X-Request-ID"
)

// withRequestID ensures every request carries a correlation id. A
// caller-provided X-Request-ID is honored, otherwise a fresh one is
// generated. The id lands in the request context and is echoed back in the
// response header.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}

// requireAPIKey guards an endpoint with the shared API key. A server
// without a configured key refuses everything with 500 so a
// misconfiguration cannot silently open the API.
func (h *Handler) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.APIKey == "" {
			h.writeError(w, r, http.StatusInternalServerError, "EDGE_API_KEY is not set on the server.")
			return
		}

		incoming := r.Header.Get(apiKeyHeader)
		if incoming == "" {
			h.writeError(w, r, http.StatusUnauthorized, "Missing X-API-Key header.")
			return
		}
		if incoming != h.cfg.APIKey {
			h.writeError(w, r, http.StatusForbidden, "Invalid API key.")
			return
		}

		next(w, r)
	}
}

// observed records the request duration metric for an endpoint.
func (h *Handler) observed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.metrics != nil {
			defer h.metrics.RecordRequestDuration(time.Now(), endpoint)
		}
		next(w, r)
	}
}
