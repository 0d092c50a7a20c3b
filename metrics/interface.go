package metrics

import "time"

// Collector is the interface the rest of the application reports through.
// It abstracts the Prometheus specifics so the chat pipeline and the HTTP
// handlers can be tested without a registry.
//
// Implemented by the concrete *Metrics type.
type Collector interface {
	// IncrementIngested adds accepted documents to the ingested counter.
	IncrementIngested(count int)

	// IncrementChats increments the counter of answered chats.
	IncrementChats()

	// IncrementErrors increments the error counter for an endpoint.
	IncrementErrors(endpoint string)

	// ObserveStageDuration records how long a chat pipeline stage took.
	ObserveStageDuration(stage string, elapsed time.Duration)

	// RecordRequestDuration records the duration of a request for an endpoint.
	RecordRequestDuration(start time.Time, endpoint string)
}
