package rag

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Every failed chat call surfaces exactly one of
// these kinds, wrapped in a StageError carrying the stage name and request
// correlation id.
var (
	// ErrInvalidQuery is returned when the question fails validation.
	ErrInvalidQuery = errors.New("rag: invalid query")

	// ErrRetrievalTimeout is returned when the similarity search exceeded
	// its stage deadline.
	ErrRetrievalTimeout = errors.New("rag: retrieval timed out")

	// ErrRetrievalUnavailable is returned when the document store is
	// unreachable or answers with an error status.
	ErrRetrievalUnavailable = errors.New("rag: retrieval unavailable")

	// ErrRetrievalMalformed is returned when the store response cannot be
	// parsed into the expected shape.
	ErrRetrievalMalformed = errors.New("rag: retrieval malformed")

	// ErrGenerationTimeout is returned when the generation call exceeded
	// its stage deadline.
	ErrGenerationTimeout = errors.New("rag: generation timed out")

	// ErrGenerationUnavailable is returned when the generation backend is
	// unreachable or answers with an error status.
	ErrGenerationUnavailable = errors.New("rag: generation unavailable")

	// ErrGenerationMalformed is returned when the backend response lacks
	// the expected text field.
	ErrGenerationMalformed = errors.New("rag: generation malformed")

	// ErrChatTimeout is returned when the overall request deadline was
	// reached before the pipeline completed, regardless of per-stage budget
	// remaining.
	ErrChatTimeout = errors.New("rag: chat timed out")
)

// IsTimeoutError checks if the error is any of the deadline kinds.
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrRetrievalTimeout) ||
		errors.Is(err, ErrGenerationTimeout) ||
		errors.Is(err, ErrChatTimeout)
}

// IsInvalidQueryError checks if the error is a query validation failure.
func IsInvalidQueryError(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// StageError wraps a stage failure with the stage name and the request
// correlation id, giving callers a stable, stage-agnostic error shape.
type StageError struct {
	Stage     string
	RequestID string
	Err       error
}

func (e *StageError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("stage %s (request_id=%s): %v", e.Stage, e.RequestID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
