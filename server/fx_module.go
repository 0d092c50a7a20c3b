package server

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rag-api/logger"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// FXModule wires the HTTP API into Fx.
//
// The module:
//  1. Provides NewConfig, NewHandler and NewServer to the container.
//  2. Invokes RegisterServerLifecycle to start and gracefully stop the
//     listener.
var FXModule = fx.Module("server",
	fx.Provide(
		NewConfig,
		func(c *vectorstore.Client) DocumentWriter { return c },
		NewHandler,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle starts the API server in a background goroutine
// on application start and shuts it down gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting API server", nil, map[string]interface{}{
					"address": s.HTTP.Addr,
				})

				if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting API server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down API server", nil, nil)

			shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
			defer cancel()
			return s.HTTP.Shutdown(shutdownCtx)
		},
	})
}
