package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/rag-api/generation"
	"github.com/Aleph-Alpha/rag-api/logger"
	"github.com/Aleph-Alpha/rag-api/requestid"
	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

func newTestOrchestrator(t *testing.T, cfg Config) (*Orchestrator, *MockDocumentStore, *MockTextGenerator) {
	ctrl := gomock.NewController(t)
	store := NewMockDocumentStore(ctrl)
	generator := NewMockTextGenerator(ctrl)

	log := &logger.Logger{Zap: zap.NewNop()}
	orch := NewOrchestrator(NewRetriever(store, cfg), generator, cfg, log, nil, nil)
	return orch, store, generator
}

func TestRunChatHappyPath(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "What is the capital of France?", 5).
		Return([]vectorstore.StoredDocument{
			{Title: "Paris Travel Guide", Text: "Paris is the capital of France.", Distance: 0.1},
		}, nil)

	var seenPrompt string
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return "Paris is the capital of France. Used sources: 1", nil
		})

	result, err := orch.RunChat(context.Background(), "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, "Paris is the capital of France. Used sources: 1", result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Paris Travel Guide", result.Sources[0].Title)

	assert.Contains(t, seenPrompt, "User question:\nWhat is the capital of France?")
	assert.Contains(t, seenPrompt, "[Source 1]")
	assert.Equal(t, len(seenPrompt), result.PromptChars)

	assert.GreaterOrEqual(t, result.Timing.RetrievalMS, int64(0))
	assert.GreaterOrEqual(t, result.Timing.TotalMS, int64(0))
}

func TestRunChatTrimsQuestionBeforeRetrieval(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "what is qdrant?", 5).
		Return(nil, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("answer", nil)

	_, err := orch.RunChat(context.Background(), "  what is qdrant?  ")
	require.NoError(t, err)
}

func TestRunChatRejectsInvalidQueryWithoutSideEffects(t *testing.T) {
	// no expectations registered: any store or generator call fails the test
	orch, _, _ := newTestOrchestrator(t, DefaultConfig())

	_, err := orch.RunChat(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = orch.RunChat(context.Background(), strings.Repeat("y", MaxQueryLen+1))
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestRunChatZeroMatchesStillGenerates(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "nothing indexed about this", 5).
		Return([]vectorstore.StoredDocument{}, nil)

	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, noSourcesMarker)
			return "The sources are insufficient to answer this.", nil
		})

	result, err := orch.RunChat(context.Background(), "nothing indexed about this")
	require.NoError(t, err)
	assert.Empty(t, result.Sources)
	assert.Equal(t, "The sources are insufficient to answer this.", result.Answer)
}

func TestRunChatRetrievalFailureAbortsPipeline(t *testing.T) {
	// generator has no expectations: it must never be reached
	orch, store, _ := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "some question", 5).
		Return(nil, errors.New("connection refused"))

	ctx := requestid.NewContext(context.Background(), "req-42")
	_, err := orch.RunChat(ctx, "some question")

	assert.ErrorIs(t, err, ErrRetrievalUnavailable)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageRetrieval, stageErr.Stage)
	assert.Equal(t, "req-42", stageErr.RequestID)
}

func TestRunChatGenerationMalformed(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "some question", 5).
		Return(nil, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("%w: missing response field", generation.ErrMalformedResponse))

	_, err := orch.RunChat(context.Background(), "some question")
	assert.ErrorIs(t, err, ErrGenerationMalformed)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageGeneration, stageErr.Stage)
}

func TestRunChatGenerationUnavailable(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "some question", 5).
		Return(nil, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", errors.New("dial tcp: connection refused"))

	_, err := orch.RunChat(context.Background(), "some question")
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
}

func TestRunChatStageBudgetProducesStageTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetrievalTimeout = 20 * time.Millisecond
	cfg.OverallTimeout = 5 * time.Second
	orch, store, _ := newTestOrchestrator(t, cfg)

	store.EXPECT().
		Search(gomock.Any(), "slow store", 5).
		DoAndReturn(func(ctx context.Context, _ string, _ int) ([]vectorstore.StoredDocument, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := orch.RunChat(context.Background(), "slow store")
	assert.ErrorIs(t, err, ErrRetrievalTimeout)
	assert.NotErrorIs(t, err, ErrChatTimeout)
}

func TestRunChatOverallDeadlineWinsOverStageBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetrievalTimeout = 5 * time.Second
	cfg.OverallTimeout = 30 * time.Millisecond
	orch, store, _ := newTestOrchestrator(t, cfg)

	store.EXPECT().
		Search(gomock.Any(), "slow store", 5).
		DoAndReturn(func(ctx context.Context, _ string, _ int) ([]vectorstore.StoredDocument, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := orch.RunChat(context.Background(), "slow store")
	assert.ErrorIs(t, err, ErrChatTimeout)
	assert.True(t, IsTimeoutError(err))
}

func TestRunChatGenerationTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerationTimeout = 20 * time.Millisecond
	orch, store, generator := newTestOrchestrator(t, cfg)

	store.EXPECT().
		Search(gomock.Any(), "some question", 5).
		Return(nil, nil)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	_, err := orch.RunChat(context.Background(), "some question")
	assert.ErrorIs(t, err, ErrGenerationTimeout)
	assert.NotErrorIs(t, err, ErrChatTimeout)
}

func TestRunChatRecordsStageTimings(t *testing.T) {
	orch, store, generator := newTestOrchestrator(t, DefaultConfig())

	store.EXPECT().
		Search(gomock.Any(), "timed question", 5).
		DoAndReturn(func(context.Context, string, int) ([]vectorstore.StoredDocument, error) {
			time.Sleep(15 * time.Millisecond)
			return nil, nil
		})
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (string, error) {
			time.Sleep(15 * time.Millisecond)
			return "answer", nil
		})

	result, err := orch.RunChat(context.Background(), "timed question")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Timing.RetrievalMS, int64(10))
	assert.GreaterOrEqual(t, result.Timing.GenerationMS, int64(10))
	assert.GreaterOrEqual(t, result.Timing.TotalMS,
		result.Timing.RetrievalMS+result.Timing.GenerationMS)
}
