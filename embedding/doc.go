// Package embedding computes vector embeddings for text by calling an
// OpenAI-compatible inference endpoint (POST {base}/embeddings).
//
// Both the document ingestion path and the chat retrieval path go through
// this package: documents are embedded before they are upserted into the
// vector store, and a chat query is embedded before the similarity search.
//
// Application code depends on *Client; the HTTP provider behind it is an
// implementation detail.
package embedding
