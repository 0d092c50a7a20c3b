// Package logger provides structured JSON logging for the RAG API, backed by
// Uber's Zap.
//
// The package wraps zap.Logger behind a small surface
// (Info/Debug/Warn/Error/Fatal) that takes a message, an optional error and
// optional field maps, so call sites stay uniform across the codebase:
//
//	log.Info("chat pipeline finished", nil, map[string]interface{}{
//	    "request_id": reqID,
//	    "total_ms":   timing.TotalMS,
//	})
//
// Every entry carries the process id and service name as initial fields and
// is written to stderr with ISO8601 timestamps.
//
// The package ships an Fx module that provides the logger and syncs buffered
// entries on shutdown:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(logger.NewConfig),
//	)
package logger
