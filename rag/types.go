package rag

import (
	"context"

	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// Query length bounds, counted in runes after trimming.
const (
	MinQueryLen = 2
	MaxQueryLen = 2000
)

// DocumentStore is the similarity-search boundary the retrieval stage talks
// to. One call per retrieval; at most limit matches come back, ordered
// nearest first. Zero matches is a valid outcome.
//
//go:generate mockgen -source=types.go -destination=mock_stages.go -package=rag
type DocumentStore interface {
	Search(ctx context.Context, query string, limit int) ([]vectorstore.StoredDocument, error)
}

// TextGenerator is the generation boundary. A single complete response per
// call; an empty string is a valid (if unhelpful) result.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SourceDocument is one retrieved result as it appears in API responses and
// in the rendered prompt. Never mutated after retrieval; the ordering
// produced by the store is preserved through the whole pipeline.
type SourceDocument struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Publisher     string  `json:"source"`
	PublishedDate string  `json:"published_date"`
	Distance      float32 `json:"distance"`
	Snippet       string  `json:"snippet"`
}

// Prompt is the immutable text blob sent to the generator. Built once per
// request, consumed exactly once.
type Prompt string

// StageTiming is the per-stage elapsed time breakdown of one chat call, in
// milliseconds.
type StageTiming struct {
	RetrievalMS  int64 `json:"retrieval_ms"`
	PromptMS     int64 `json:"prompt_ms"`
	GenerationMS int64 `json:"generation_ms"`
	TotalMS      int64 `json:"total_ms"`
}

// ChatResult is the full outcome of a successful chat call. The production
// endpoint projects only Answer and Sources; diagnostic consumers get the
// whole structure.
type ChatResult struct {
	Answer      string           `json:"answer"`
	Sources     []SourceDocument `json:"sources"`
	Timing      StageTiming      `json:"timing"`
	PromptChars int              `json:"prompt_chars"`
}
