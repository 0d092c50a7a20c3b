package embedding

import "context"

// Provider contract
type Provider interface {
	// Create generates embeddings for the given texts using the configured
	// model. The returned slice preserves input order.
	Create(ctx context.Context, texts ...string) ([][]float32, error)
}
