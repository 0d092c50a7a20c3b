package vectorstore

import "errors"

// Common vector store errors
var (
	// ErrStoreUnavailable is returned when Qdrant or the embedding service
	// cannot be reached or answers with an error status.
	ErrStoreUnavailable = errors.New("vectorstore: store unavailable")

	// ErrMalformedRecord is returned when a stored point cannot be converted
	// into the expected document shape.
	ErrMalformedRecord = errors.New("vectorstore: malformed record")
)

// IsUnavailableError checks if the error indicates an unreachable store.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsMalformedRecordError checks if the error indicates an unconvertible
// stored record.
func IsMalformedRecordError(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}
