package rag

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the tunables of the chat pipeline. All values are
// configuration, not per-request parameters.
type Config struct {
	// TopK is the default number of nearest documents asked from the store.
	TopK int `yaml:"top_k" env:"RAG_TOP_K"`

	// SnippetMaxChars is the character budget a retrieved document's text
	// is truncated to before inclusion in a prompt.
	SnippetMaxChars int `yaml:"snippet_max_chars" env:"RAG_MAX_SOURCE_CHARS"`

	// Per-stage deadline budgets. Each stage additionally never outlives
	// the remaining slice of the overall deadline.
	RetrievalTimeout  time.Duration `yaml:"retrieval_timeout" env:"RAG_RETRIEVAL_TIMEOUT_S"`
	PromptTimeout     time.Duration `yaml:"prompt_timeout" env:"RAG_PROMPT_TIMEOUT_S"`
	GenerationTimeout time.Duration `yaml:"generation_timeout" env:"RAG_GENERATION_TIMEOUT_S"`

	// OverallTimeout bounds the whole pipeline.
	OverallTimeout time.Duration `yaml:"overall_timeout" env:"RAG_OVERALL_TIMEOUT_S"`
}

// DefaultConfig provides the documented defaults: top-K 5, snippet budget
// 1200 characters, retrieval 20s, prompt build 5s, generation 120s,
// overall 150s.
func DefaultConfig() Config {
	return Config{
		TopK:              5,
		SnippetMaxChars:   1200,
		RetrievalTimeout:  20 * time.Second,
		PromptTimeout:     5 * time.Second,
		GenerationTimeout: 120 * time.Second,
		OverallTimeout:    150 * time.Second,
	}
}

// NewConfig reads the pipeline configuration from environment variables,
// falling back to DefaultConfig values.
func NewConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("RAG_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopK = n
		}
	}
	if v := os.Getenv("RAG_MAX_SOURCE_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnippetMaxChars = n
		}
	}

	cfg.RetrievalTimeout = envSeconds("RAG_RETRIEVAL_TIMEOUT_S", cfg.RetrievalTimeout)
	cfg.PromptTimeout = envSeconds("RAG_PROMPT_TIMEOUT_S", cfg.PromptTimeout)
	cfg.GenerationTimeout = envSeconds("RAG_GENERATION_TIMEOUT_S", cfg.GenerationTimeout)
	cfg.OverallTimeout = envSeconds("RAG_OVERALL_TIMEOUT_S", cfg.OverallTimeout)

	return cfg
}

// Validate ensures the configured values are usable.
func (c Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("rag: top_k must be >= 1")
	}
	if c.SnippetMaxChars < 1 {
		return fmt.Errorf("rag: snippet_max_chars must be >= 1")
	}
	for _, d := range []time.Duration{c.RetrievalTimeout, c.PromptTimeout, c.GenerationTimeout, c.OverallTimeout} {
		if d <= 0 {
			return fmt.Errorf("rag: timeouts must be positive")
		}
	}
	return nil
}

func envSeconds(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
