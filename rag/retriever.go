package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// Retriever runs the first pipeline stage: a single similarity search
// against the document store, projecting matches into SourceDocuments with
// text truncated to the configured snippet budget.
type Retriever struct {
	store           DocumentStore
	topK            int
	snippetMaxChars int
}

// NewRetriever creates a retrieval stage over the given store.
func NewRetriever(store DocumentStore, cfg Config) *Retriever {
	return &Retriever{
		store:           store,
		topK:            cfg.TopK,
		snippetMaxChars: cfg.SnippetMaxChars,
	}
}

// ValidateQuery trims the question and checks the length bounds, returning
// the trimmed form.
func ValidateQuery(question string) (string, error) {
	trimmed := strings.TrimSpace(question)
	n := len([]rune(trimmed))
	if n < MinQueryLen || n > MaxQueryLen {
		return "", fmt.Errorf("%w: length must be between %d and %d characters, got %d",
			ErrInvalidQuery, MinQueryLen, MaxQueryLen, n)
	}
	return trimmed, nil
}

// Retrieve executes one search for the query and returns at most limit
// matches ordered nearest first. A non-positive limit falls back to the
// configured top-K. An empty result set is a valid outcome, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]SourceDocument, error) {
	if limit <= 0 {
		limit = r.topK
	}

	stored, err := r.store.Search(ctx, query, limit)
	if err != nil {
		return nil, r.classify(ctx, err)
	}

	docs := make([]SourceDocument, 0, len(stored))
	for _, s := range stored {
		docs = append(docs, SourceDocument{
			Title:         s.Title,
			URL:           s.URL,
			Publisher:     s.Source,
			PublishedDate: s.PublishedDate,
			Distance:      s.Distance,
			Snippet:       truncateRunes(s.Text, r.snippetMaxChars),
		})
	}
	return docs, nil
}

// classify maps a store failure onto the retrieval error kinds. Context
// expiry is checked directly because grpc status errors do not wrap
// context.DeadlineExceeded.
func (r *Retriever) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrRetrievalTimeout, err)
	}
	if vectorstore.IsMalformedRecordError(err) {
		return fmt.Errorf("%w: %v", ErrRetrievalMalformed, err)
	}
	return fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
}

// truncateRunes cuts s to at most max runes.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
