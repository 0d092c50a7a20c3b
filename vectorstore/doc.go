// Package vectorstore wraps the official Qdrant Go client with the
// document-store operations the RAG API needs.
//
// Responsibilities:
//   - Establish and validate connectivity with Qdrant.
//   - Provision the document collection (create if missing).
//   - Insert validated documents, embedding their text first.
//   - Similarity search: embed a query string and return the nearest
//     stored documents with their distance.
//   - Readiness probe for the health endpoint.
//
// The store is asked for at most K nearest matches per search; zero matches
// is a legitimate outcome and yields an empty slice, not an error. Context
// deadline violations are passed through so callers can classify timeouts
// themselves; malformed records surface as ErrMalformedRecord.
package vectorstore
