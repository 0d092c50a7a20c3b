package vectorstore

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the Qdrant-backed document store into Fx.
//
// The module:
//  1. Provides NewConfig and NewClient to the dependency injection container
//  2. Invokes RegisterVectorStoreLifecycle for cleanup on shutdown
//
// Dependencies required by this module:
//   - An *embedding.Client instance must be available in the container
var FXModule = fx.Module("vectorstore",
	fx.Provide(
		NewConfig,
		NewClient,
	),
	fx.Invoke(RegisterVectorStoreLifecycle),
)

// RegisterVectorStoreLifecycle closes the store client on application
// shutdown.
func RegisterVectorStoreLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
