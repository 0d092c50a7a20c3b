// Package requestid carries a per-request correlation id through the call
// chain.
//
// The id is attached to the request context at the HTTP boundary (either
// taken from the caller's X-Request-ID header or freshly generated) and read
// back wherever a log line or error needs to be correlated with the request
// that produced it.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// New returns a fresh correlation id.
func New() string {
	return uuid.NewString()
}

// NewContext returns a copy of ctx carrying the given correlation id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the correlation id carried by ctx, or "" when none
// was attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
