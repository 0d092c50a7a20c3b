package rag

import (
	"context"
	"fmt"
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/rag-api/generation"
	"github.com/Aleph-Alpha/rag-api/logger"
	"github.com/Aleph-Alpha/rag-api/metrics"
	"github.com/Aleph-Alpha/rag-api/requestid"
	"github.com/Aleph-Alpha/rag-api/tracer"
)

// Stage names used in errors, metrics and span names.
const (
	StageRetrieval  = "retrieval"
	StagePrompt     = "prompt"
	StageGeneration = "generation"
)

// Orchestrator drives one chat request through the fixed pipeline:
// retrieve, build prompt, generate. Stateless; a single instance serves
// concurrent requests.
type Orchestrator struct {
	retriever *Retriever
	generator TextGenerator
	cfg       Config
	logger    *logger.Logger
	tracer    *tracer.Tracer
	metrics   metrics.Collector
}

// NewOrchestrator wires the pipeline stages together. The tracer and
// metrics collector may be nil, in which case the respective observations
// are skipped.
func NewOrchestrator(retriever *Retriever, generator TextGenerator, cfg Config,
	log *logger.Logger, trc *tracer.Tracer, collector metrics.Collector) *Orchestrator {
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
		cfg:       cfg,
		logger:    log,
		tracer:    trc,
		metrics:   collector,
	}
}

// RunChat executes the full pipeline for one question. The question is
// validated first; each stage then runs under the tighter of its own budget
// and the remaining overall deadline. The first stage failure aborts the
// pipeline, classified through the package error taxonomy. When the overall
// deadline is the cause, the result is ErrChatTimeout no matter which stage
// was running.
func (o *Orchestrator) RunChat(ctx context.Context, question string) (*ChatResult, error) {
	query, err := ValidateQuery(question)
	if err != nil {
		return nil, err
	}

	requestID := requestid.FromContext(ctx)
	overallCtx, cancel := context.WithTimeout(ctx, o.cfg.OverallTimeout)
	defer cancel()

	totalStart := time.Now()
	o.logger.Debug("chat pipeline started", nil, map[string]interface{}{
		"request_id": requestID,
	})

	sources, retrievalDur, err := runStage(overallCtx, o.cfg.RetrievalTimeout,
		func(stageCtx context.Context) ([]SourceDocument, error) {
			spanCtx, span := o.span(stageCtx, StageRetrieval)
			defer span.End()
			docs, err := o.retriever.Retrieve(spanCtx, query, 0)
			if err != nil {
				o.recordSpanError(span, err)
				return nil, err
			}
			o.setSpanInt(span, "result_count", len(docs))
			return docs, nil
		})
	o.observeStage(StageRetrieval, retrievalDur)
	if err != nil {
		return nil, o.fail(overallCtx, StageRetrieval, requestID, err)
	}

	prompt, promptDur, err := runStage(overallCtx, o.cfg.PromptTimeout,
		func(stageCtx context.Context) (Prompt, error) {
			_, span := o.span(stageCtx, StagePrompt)
			defer span.End()
			if stageCtx.Err() != nil {
				return "", stageCtx.Err()
			}
			p := BuildPrompt(query, sources)
			o.setSpanInt(span, "prompt_chars", len(p))
			return p, nil
		})
	o.observeStage(StagePrompt, promptDur)
	if err != nil {
		return nil, o.fail(overallCtx, StagePrompt, requestID, err)
	}

	answer, generationDur, err := runStage(overallCtx, o.cfg.GenerationTimeout,
		func(stageCtx context.Context) (string, error) {
			spanCtx, span := o.span(stageCtx, StageGeneration)
			defer span.End()
			text, err := o.generator.Generate(spanCtx, string(prompt))
			if err != nil {
				err = classifyGeneration(stageCtx, err)
				o.recordSpanError(span, err)
				return "", err
			}
			return text, nil
		})
	o.observeStage(StageGeneration, generationDur)
	if err != nil {
		return nil, o.fail(overallCtx, StageGeneration, requestID, err)
	}

	result := &ChatResult{
		Answer:  answer,
		Sources: sources,
		Timing: StageTiming{
			RetrievalMS:  retrievalDur.Milliseconds(),
			PromptMS:     promptDur.Milliseconds(),
			GenerationMS: generationDur.Milliseconds(),
			TotalMS:      time.Since(totalStart).Milliseconds(),
		},
		PromptChars: len(prompt),
	}

	if o.metrics != nil {
		o.metrics.IncrementChats()
	}
	o.logger.Info("chat pipeline completed", nil, map[string]interface{}{
		"request_id":    requestID,
		"source_count":  len(sources),
		"total_ms":      result.Timing.TotalMS,
		"retrieval_ms":  result.Timing.RetrievalMS,
		"generation_ms": result.Timing.GenerationMS,
	})
	return result, nil
}

// runStage executes one stage under the tighter of its own budget and the
// parent's remaining deadline, measuring elapsed time.
func runStage[T any](parent context.Context, budget time.Duration, fn func(context.Context) (T, error)) (T, time.Duration, error) {
	stageCtx, cancel := context.WithTimeout(parent, budget)
	defer cancel()

	start := time.Now()
	out, err := fn(stageCtx)
	return out, time.Since(start), err
}

// fail classifies a stage failure into the returned error. Overall deadline
// expiry takes precedence over whatever the stage reported.
func (o *Orchestrator) fail(overallCtx context.Context, stage, requestID string, err error) error {
	if overallCtx.Err() != nil {
		err = fmt.Errorf("%w: %s stage interrupted", ErrChatTimeout, stage)
	}
	wrapped := &StageError{Stage: stage, RequestID: requestID, Err: err}
	o.logger.Error("chat pipeline failed", wrapped, map[string]interface{}{
		"request_id": requestID,
		"stage":      stage,
	})
	return wrapped
}

// classifyGeneration maps a generation client failure onto the taxonomy.
// Context expiry is checked directly because the wrapped transport errors
// do not reliably unwrap to context.DeadlineExceeded.
func classifyGeneration(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	if generation.IsMalformedResponseError(err) {
		return fmt.Errorf("%w: %v", ErrGenerationMalformed, err)
	}
	return fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
}

func (o *Orchestrator) span(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	if o.tracer == nil {
		return ctx, traceSpan.SpanFromContext(ctx)
	}
	return o.tracer.StartSpan(ctx, name)
}

func (o *Orchestrator) recordSpanError(span traceSpan.Span, err error) {
	if o.tracer != nil {
		o.tracer.RecordErrorOnSpan(span, err)
	}
}

func (o *Orchestrator) setSpanInt(span traceSpan.Span, key string, value int) {
	if o.tracer != nil {
		o.tracer.SetIntAttribute(span, key, value)
	}
}

func (o *Orchestrator) observeStage(stage string, elapsed time.Duration) {
	if o.metrics != nil {
		o.metrics.ObserveStageDuration(stage, elapsed)
	}
}
