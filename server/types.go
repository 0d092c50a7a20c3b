package server

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Aleph-Alpha/rag-api/rag"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// maxBatchSize caps how many documents a single batch ingest may carry.
const maxBatchSize = 500

// articleIn is the ingestion request body.
type articleIn struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date"`
	Text          string `json:"text"`
}

// validate checks the field bounds of an incoming article.
func (a articleIn) validate() error {
	if err := boundedField("title", a.Title, 3, 200); err != nil {
		return err
	}
	if err := validArticleURL(a.URL); err != nil {
		return err
	}
	if err := boundedField("source", a.Source, 2, 80); err != nil {
		return err
	}
	if err := boundedField("published_date", a.PublishedDate, 8, 30); err != nil {
		return err
	}
	return boundedField("text", a.Text, 50, 20000)
}

func (a articleIn) toDocument() vectorstore.Document {
	return vectorstore.Document{
		Title:         a.Title,
		URL:           a.URL,
		Source:        a.Source,
		PublishedDate: a.PublishedDate,
		Text:          a.Text,
	}
}

func boundedField(name, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return fmt.Errorf("field %s must be between %d and %d characters, got %d", name, min, max, n)
	}
	return nil
}

func validArticleURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("field url must be a valid http(s) URL")
	}
	return nil
}

// chatIn is the body of chat and generation debug requests.
type chatIn struct {
	Message string `json:"message"`
}

// chatOut is the production chat response: answer plus the cited sources,
// in retrieval order.
type chatOut struct {
	Answer  string               `json:"answer"`
	Sources []rag.SourceDocument `json:"sources"`
}

// ingestOut acknowledges accepted documents.
type ingestOut struct {
	Status   string `json:"status"`
	Inserted int    `json:"inserted"`
}

// healthOut reports process liveness and document store readiness.
type healthOut struct {
	OK            bool   `json:"ok"`
	UptimeS       int64  `json:"uptime_s"`
	OllamaModel   string `json:"ollama_model"`
	OllamaBaseURL string `json:"ollama_base_url"`
}

// errorOut is the uniform error body.
type errorOut struct {
	Detail string `json:"detail"`
}

// sourcesForAPI never serializes as JSON null, so clients can rely on an
// array being present.
func sourcesForAPI(sources []rag.SourceDocument) []rag.SourceDocument {
	if sources == nil {
		return []rag.SourceDocument{}
	}
	return sources
}

// normalizeMessage trims the incoming chat message.
func normalizeMessage(msg string) string {
	return strings.TrimSpace(msg)
}
