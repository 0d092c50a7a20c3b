package rag

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rag-api/generation"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

// FXModule wires the chat pipeline into Fx.
//
// It provides:
//   - Config        (NewConfig)
//   - DocumentStore (bound to *vectorstore.Client)
//   - TextGenerator (bound to *generation.Client)
//   - *Retriever    (NewRetriever)
//   - *Orchestrator (NewOrchestrator)
//
// The orchestrator holds no resources, so no lifecycle hook is registered.
var FXModule = fx.Module(
	"rag",

	fx.Provide(
		NewConfig,

		func(store *vectorstore.Client) DocumentStore { return store },
		func(client *generation.Client) TextGenerator { return client },

		NewRetriever,
		NewOrchestrator,
	),
)
