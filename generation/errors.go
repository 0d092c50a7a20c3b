package generation

import "errors"

// Common generation errors
var (
	// ErrMalformedResponse is returned when the backend answers with a 2xx
	// status but the body cannot be decoded or lacks the response field.
	ErrMalformedResponse = errors.New("generation: malformed response")

	// ErrBackendStatus is returned when the backend answers with a non-2xx
	// status.
	ErrBackendStatus = errors.New("generation: backend returned error status")
)

// IsMalformedResponseError checks if the error indicates an undecodable or
// incomplete backend response.
func IsMalformedResponseError(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
