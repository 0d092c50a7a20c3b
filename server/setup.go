package server

import (
	"net/http"
)

// Server wraps the HTTP server serving the public API.
type Server struct {
	HTTP *http.Server
	cfg  Config
}

// NewServer builds the API server with all routes registered.
//
// Route map:
//
//	GET  /health          liveness plus store readiness (unauthenticated)
//	POST /ingest          store one document
//	POST /ingest/batch    store up to maxBatchSize documents
//	POST /chat            full retrieval-augmented chat
//	GET  /debug/retrieve  retrieval stage only (?q=...)
//	POST /debug/prompt    retrieval plus prompt rendering, no generation
//	POST /debug/generate  generation backend probe with a minimal prompt
func NewServer(cfg Config, h *Handler) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.observed("health", h.Health))
	mux.HandleFunc("POST /ingest", h.observed("ingest", h.requireAPIKey(h.Ingest)))
	mux.HandleFunc("POST /ingest/batch", h.observed("ingest_batch", h.requireAPIKey(h.IngestBatch)))
	mux.HandleFunc("POST /chat", h.observed("chat", h.requireAPIKey(h.Chat)))
	mux.HandleFunc("GET /debug/retrieve", h.observed("debug_retrieve", h.requireAPIKey(h.DebugRetrieve)))
	mux.HandleFunc("POST /debug/prompt", h.observed("debug_prompt", h.requireAPIKey(h.DebugPrompt)))
	mux.HandleFunc("POST /debug/generate", h.observed("debug_generate", h.requireAPIKey(h.DebugGenerate)))

	return &Server{
		HTTP: &http.Server{
			Addr:    cfg.Address,
			Handler: withRequestID(mux),
		},
		cfg: cfg,
	}
}
