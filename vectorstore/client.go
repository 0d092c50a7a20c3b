package vectorstore

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/rag-api/embedding"
)

// Embedder is the slice of the embedding client the store needs to turn
// document text and queries into vectors.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts ...string) ([][]float32, error)
}

// Client wraps the official Qdrant Go client and the embedding client,
// providing the application-level document store: provisioning, insertion
// and text similarity search.
type Client struct {
	api      *qdrant.Client
	embedder Embedder
	cfg      *Config
}

const (
	// insertBatchSize is the chunk size for batch inserts; each chunk is
	// embedded with a single inference call.
	insertBatchSize = 50

	// maxConcurrentEmbeds bounds parallel inference calls during batch
	// ingestion.
	maxConcurrentEmbeds = 4
)

// NewClient constructs a store client and validates connectivity via a
// health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this performs
// an immediate health check to fail fast if the service is unreachable.
func NewClient(cfg *Config, embedder *embedding.Client) (*Client, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", cfg.Endpoint, cfg.Port)

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	c := &Client{
		api:      api,
		embedder: embedder,
		cfg:      cfg,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service.
// Lightweight and fast, used during startup and readiness probes.
func (c *Client) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)", resp.Title, resp.Version, c.cfg.Endpoint)

	return nil
}

// Ready reports whether the store answers its health check. Used by the
// health endpoint; never called on the chat path.
func (c *Client) Ready(ctx context.Context) bool {
	if c.api == nil {
		return false
	}
	_, err := c.api.HealthCheck(ctx)
	return err == nil
}

// Close gracefully shuts down the client.
//
// The official Qdrant Go SDK doesn't maintain persistent connections, so
// this exists for lifecycle symmetry.
func (c *Client) Close() error {
	log.Println("[Qdrant] closing client (no-op)")
	return nil
}
