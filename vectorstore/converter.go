package vectorstore

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Payload field names used in the document collection.
const (
	fieldTitle         = "title"
	fieldURL           = "url"
	fieldSource        = "source"
	fieldPublishedDate = "published_date"
	fieldText          = "text"
)

// buildPayload converts a document into the flat payload stored with its
// vector.
func buildPayload(doc Document) map[string]any {
	return map[string]any{
		fieldTitle:         doc.Title,
		fieldURL:           doc.URL,
		fieldSource:        doc.Source,
		fieldPublishedDate: doc.PublishedDate,
		fieldText:          doc.Text,
	}
}

// parseStoredDocuments converts a Qdrant query response into stored
// documents, preserving the response order.
func parseStoredDocuments(resp []*qdrant.ScoredPoint) ([]StoredDocument, error) {
	docs := make([]StoredDocument, 0, len(resp))
	for i, point := range resp {
		doc, err := storedDocumentFromPoint(point)
		if err != nil {
			return nil, fmt.Errorf("%w: point [%d]: %v", ErrMalformedRecord, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// storedDocumentFromPoint extracts the document payload from a scored point.
// Missing display fields default to empty strings; a present field of the
// wrong kind is an error.
//
// Qdrant reports cosine similarity as a score where higher means more
// similar; it is converted to a distance (lower = closer) to match the wire
// contract of the API.
func storedDocumentFromPoint(point *qdrant.ScoredPoint) (StoredDocument, error) {
	if point == nil {
		return StoredDocument{}, fmt.Errorf("nil point")
	}

	doc := StoredDocument{
		Distance: 1 - point.Score,
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{fieldTitle, &doc.Title},
		{fieldURL, &doc.URL},
		{fieldSource, &doc.Source},
		{fieldPublishedDate, &doc.PublishedDate},
		{fieldText, &doc.Text},
	}

	for _, f := range fields {
		value, err := payloadString(point.Payload, f.name)
		if err != nil {
			return StoredDocument{}, err
		}
		*f.dst = value
	}

	return doc, nil
}

// payloadString reads a string field from a point payload. Absent fields
// and explicit nulls yield "".
func payloadString(payload map[string]*qdrant.Value, key string) (string, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return "", nil
	}

	switch v := value.Kind.(type) {
	case *qdrant.Value_StringValue:
		return v.StringValue, nil
	case *qdrant.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("field %q has unexpected kind %T", key, v)
	}
}
