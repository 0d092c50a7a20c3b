package main

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rag-api/embedding"
	"github.com/Aleph-Alpha/rag-api/generation"
	"github.com/Aleph-Alpha/rag-api/logger"
	"github.com/Aleph-Alpha/rag-api/metrics"
	"github.com/Aleph-Alpha/rag-api/rag"
	"github.com/Aleph-Alpha/rag-api/server"
	"github.com/Aleph-Alpha/rag-api/tracer"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

func main() {
	app := fx.New(
		fx.Provide(
			logger.NewConfig,
			metrics.NewConfig,
			tracer.NewConfig,
		),

		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,

		embedding.FXModule,
		vectorstore.FXModule,
		generation.FXModule,
		rag.FXModule,
		server.FXModule,
	)

	app.Run()
}
