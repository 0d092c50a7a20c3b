package rag

import (
	"fmt"
	"strings"
)

// noSourcesMarker replaces the context section when retrieval matched
// nothing, keeping the prompt shape stable.
const noSourcesMarker = "No sources retrieved."

const promptTemplate = `You are a helpful assistant answering questions using ONLY the provided sources.
If the sources are insufficient, say that clearly and suggest what information to add.

User question:
%s

Sources:
%s

Instructions:
- Write a clear answer.
- Use plain language.
- At the end, list which sources you used (example: "Used sources: 1, 3").
`

const sourceBlockTemplate = `[Source %d]
Title: %s
URL: %s
Publisher: %s | Date: %s
Excerpt:
%s
`

// BuildPrompt renders the question and retrieved sources into the fixed
// generation prompt. Pure and deterministic: identical inputs always yield
// an identical prompt. Source numbering starts at 1 and follows retrieval
// order, so the numbers the model cites match the response's source list.
func BuildPrompt(question string, sources []SourceDocument) Prompt {
	context := noSourcesMarker
	if len(sources) > 0 {
		blocks := make([]string, 0, len(sources))
		for i, s := range sources {
			blocks = append(blocks, fmt.Sprintf(sourceBlockTemplate,
				i+1, s.Title, s.URL, s.Publisher, s.PublishedDate, s.Snippet))
		}
		context = strings.Join(blocks, "\n\n")
	}
	return Prompt(fmt.Sprintf(promptTemplate, question, context))
}
