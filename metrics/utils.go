package metrics

import "time"

// IncrementIngested adds the given number of accepted documents to the
// ingested counter.
func (m *Metrics) IncrementIngested(count int) {
	m.ingestedTotal.Add(float64(count))
}

// IncrementChats increments the counter of successfully answered chats.
func (m *Metrics) IncrementChats() {
	m.chatsTotal.Inc()
}

// IncrementErrors increments the error counter for an endpoint.
// Example: metrics.IncrementErrors("/chat")
func (m *Metrics) IncrementErrors(endpoint string) {
	m.errorsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveStageDuration records how long a chat pipeline stage took.
// Example: metrics.ObserveStageDuration("retrieval", elapsed)
func (m *Metrics) ObserveStageDuration(stage string, elapsed time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordRequestDuration records the duration of a request for an endpoint.
// Example: defer metrics.RecordRequestDuration(time.Now(), "/chat")
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
