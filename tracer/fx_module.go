package tracer

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rag-api/logger"
)

// FXModule provides the tracer to the Fx dependency graph and registers
// shutdown hooks so pending spans are flushed on termination.
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(l *logger.Logger) Logger { return l },
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers an OnStop hook that gracefully shuts
// down the tracer provider, flushing any pending spans to the exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: shutting down tracer...")
			if tracer.tracer == nil {
				log.Println("INFO: tracer is nil, skipping shutdown")
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
