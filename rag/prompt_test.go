package rag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSources() []SourceDocument {
	return []SourceDocument{
		{
			Title:         "Paris Travel Guide",
			URL:           "https://example.com/paris",
			Publisher:     "travel-blog",
			PublishedDate: "2024-03-01",
			Distance:      0.12,
			Snippet:       "Paris is the capital of France.",
		},
		{
			Title:         "France Overview",
			URL:           "https://example.com/france",
			Publisher:     "encyclopedia",
			PublishedDate: "2023-11-15",
			Distance:      0.34,
			Snippet:       "France is a country in Western Europe.",
		},
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	sources := sampleSources()
	first := BuildPrompt("What is the capital of France?", sources)
	second := BuildPrompt("What is the capital of France?", sources)
	assert.Equal(t, first, second)
}

func TestBuildPromptContainsQuestionAndSources(t *testing.T) {
	prompt := string(BuildPrompt("What is the capital of France?", sampleSources()))

	assert.Contains(t, prompt, "User question:\nWhat is the capital of France?")
	assert.Contains(t, prompt, "[Source 1]\nTitle: Paris Travel Guide")
	assert.Contains(t, prompt, "[Source 2]\nTitle: France Overview")
	assert.Contains(t, prompt, "URL: https://example.com/paris")
	assert.Contains(t, prompt, "Publisher: travel-blog | Date: 2024-03-01")
	assert.Contains(t, prompt, "Excerpt:\nParis is the capital of France.")
	assert.Contains(t, prompt, `list which sources you used (example: "Used sources: 1, 3")`)
	assert.NotContains(t, prompt, noSourcesMarker)
}

func TestBuildPromptCitationNumbersFollowRetrievalOrder(t *testing.T) {
	sources := make([]SourceDocument, 7)
	for i := range sources {
		sources[i] = SourceDocument{Title: fmt.Sprintf("doc-%d", i)}
	}
	prompt := string(BuildPrompt("question?", sources))

	for i := range sources {
		block := fmt.Sprintf("[Source %d]\nTitle: doc-%d", i+1, i)
		require.Contains(t, prompt, block)
	}
	// ordering, not just presence
	prev := -1
	for i := 1; i <= len(sources); i++ {
		pos := strings.Index(prompt, fmt.Sprintf("[Source %d]", i))
		require.Greater(t, pos, prev)
		prev = pos
	}
}

func TestBuildPromptNoSources(t *testing.T) {
	prompt := string(BuildPrompt("anything at all", nil))

	assert.Contains(t, prompt, "Sources:\nNo sources retrieved.")
	assert.NotContains(t, prompt, "[Source 1]")
	assert.Contains(t, prompt, "Instructions:")
}

func TestBuildPromptDoesNotMutateSources(t *testing.T) {
	sources := sampleSources()
	BuildPrompt("question?", sources)
	assert.Equal(t, sampleSources(), sources)
}
