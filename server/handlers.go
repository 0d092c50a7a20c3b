package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/rag-api/generation"
	"github.com/Aleph-Alpha/rag-api/logger"
	"github.com/Aleph-Alpha/rag-api/metrics"
	"github.com/Aleph-Alpha/rag-api/rag"
	"github.com/Aleph-Alpha/rag-api/requestid"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// smallPromptPrefix is prepended to the message of the generation debug
// endpoint, keeping its prompt tiny so backend failures can be told apart
// from prompt-size problems.
const smallPromptPrefix = "Answer in 2 sentences:\n"

// DocumentWriter is the ingestion-side store boundary.
//
//go:generate mockgen -source=handlers.go -destination=mock_store.go -package=server
type DocumentWriter interface {
	Ready(ctx context.Context) bool
	EnsureCollection(ctx context.Context) error
	InsertDocument(ctx context.Context, doc vectorstore.Document) error
	InsertDocuments(ctx context.Context, docs []vectorstore.Document) error
}

// Handler carries the dependencies of all HTTP endpoints.
type Handler struct {
	cfg          Config
	orchestrator *rag.Orchestrator
	retriever    *rag.Retriever
	generator    *generation.Client
	store        DocumentWriter
	metrics      metrics.Collector
	logger       *logger.Logger
	started      time.Time
}

// NewHandler builds the endpoint handler set.
func NewHandler(cfg Config, orchestrator *rag.Orchestrator, retriever *rag.Retriever,
	generator *generation.Client, store DocumentWriter,
	collector metrics.Collector, log *logger.Logger) *Handler {
	return &Handler{
		cfg:          cfg,
		orchestrator: orchestrator,
		retriever:    retriever,
		generator:    generator,
		store:        store,
		metrics:      collector,
		logger:       log,
		started:      time.Now(),
	}
}

// Health reports liveness plus a readiness probe against the document
// store. Not authenticated; load balancers call this.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthOut{
		OK:            h.store.Ready(r.Context()),
		UptimeS:       int64(time.Since(h.started).Seconds()),
		OllamaModel:   h.generator.Model(),
		OllamaBaseURL: h.generator.BaseURL(),
	})
}

// Ingest validates and stores a single document.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var article articleIn
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if err := article.validate(); err != nil {
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.insertDocuments(r.Context(), []vectorstore.Document{article.toDocument()}); err != nil {
		h.failRequest(w, r, "ingest", http.StatusInternalServerError, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementIngested(1)
	}
	h.writeJSON(w, http.StatusOK, ingestOut{Status: "ok", Inserted: 1})
}

// IngestBatch validates and stores a batch of documents in one call. The
// batch is all-or-nothing at the validation step; a single invalid entry
// rejects the whole request before anything is written.
func (h *Handler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var articles []articleIn
	if err := json.NewDecoder(r.Body).Decode(&articles); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body, expected an array of documents.")
		return
	}
	if len(articles) == 0 {
		h.writeError(w, r, http.StatusUnprocessableEntity, "Batch must contain at least one document.")
		return
	}
	if len(articles) > maxBatchSize {
		h.writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("Batch exceeds the maximum of %d documents.", maxBatchSize))
		return
	}

	docs := make([]vectorstore.Document, len(articles))
	for i, a := range articles {
		if err := a.validate(); err != nil {
			h.writeError(w, r, http.StatusUnprocessableEntity,
				fmt.Sprintf("document %d: %v", i, err))
			return
		}
		docs[i] = a.toDocument()
	}

	if err := h.insertDocuments(r.Context(), docs); err != nil {
		h.failRequest(w, r, "ingest_batch", http.StatusInternalServerError, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementIngested(len(docs))
	}
	h.writeJSON(w, http.StatusOK, ingestOut{Status: "ok", Inserted: len(docs)})
}

// Chat runs the full retrieval-augmented pipeline and returns the answer
// together with the sources it was grounded on.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload chatIn
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	result, err := h.orchestrator.RunChat(r.Context(), payload.Message)
	if err != nil {
		status := chatErrorStatus(err)
		if status == http.StatusUnprocessableEntity {
			h.writeError(w, r, status, err.Error())
			return
		}
		h.failRequest(w, r, "chat", status, err)
		return
	}

	h.writeJSON(w, http.StatusOK, chatOut{
		Answer:  result.Answer,
		Sources: sourcesForAPI(result.Sources),
	})
}

// DebugRetrieve runs only the retrieval stage for a query, skipping
// generation entirely.
func (h *Handler) DebugRetrieve(w http.ResponseWriter, r *http.Request) {
	query, err := rag.ValidateQuery(r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sources, err := h.retriever.Retrieve(r.Context(), query, 0)
	if err != nil {
		h.failRequest(w, r, "debug_retrieve", chatErrorStatus(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"sources": sourcesForAPI(sources),
	})
}

// DebugPrompt returns the exact prompt the generator would receive for a
// message, plus the retrieved sources, without calling the generator.
func (h *Handler) DebugPrompt(w http.ResponseWriter, r *http.Request) {
	var payload chatIn
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	query, err := rag.ValidateQuery(payload.Message)
	if err != nil {
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sources, err := h.retriever.Retrieve(r.Context(), query, 0)
	if err != nil {
		h.failRequest(w, r, "debug_prompt", chatErrorStatus(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"prompt":  string(rag.BuildPrompt(query, sources)),
		"sources": sourcesForAPI(sources),
	})
}

// DebugGenerate calls the generation backend directly with a minimal
// prompt, bypassing retrieval and the full prompt template.
func (h *Handler) DebugGenerate(w http.ResponseWriter, r *http.Request) {
	var payload chatIn
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	message := normalizeMessage(payload.Message)
	if message == "" {
		h.writeError(w, r, http.StatusUnprocessableEntity, "Message must not be empty.")
		return
	}

	answer, err := h.generator.Generate(r.Context(), smallPromptPrefix+message)
	if err != nil {
		h.failRequest(w, r, "debug_generate", http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":              true,
		"ollama_base_url": h.generator.BaseURL(),
		"ollama_model":    h.generator.Model(),
		"answer":          answer,
	})
}

// insertDocuments makes sure the collection exists and writes the batch.
func (h *Handler) insertDocuments(ctx context.Context, docs []vectorstore.Document) error {
	if err := h.store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	return h.store.InsertDocuments(ctx, docs)
}

// chatErrorStatus maps pipeline errors onto HTTP statuses. Deadline kinds
// answer 504 so callers can distinguish an overloaded backend from a broken
// one.
func chatErrorStatus(err error) int {
	switch {
	case rag.IsInvalidQueryError(err):
		return http.StatusUnprocessableEntity
	case rag.IsTimeoutError(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// failRequest logs a failed request, bumps the error counter and writes the
// error body.
func (h *Handler) failRequest(w http.ResponseWriter, r *http.Request, endpoint string, status int, err error) {
	if h.metrics != nil {
		h.metrics.IncrementErrors(endpoint)
	}
	h.logger.Error("request failed", err, map[string]interface{}{
		"endpoint":   endpoint,
		"status":     status,
		"request_id": requestid.FromContext(r.Context()),
	})
	h.writeError(w, r, status, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response body", err, nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, _ *http.Request, status int, detail string) {
	h.writeJSON(w, status, errorOut{Detail: detail})
}
