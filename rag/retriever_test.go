package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/rag-api/vectorstore"
)

func newTestRetriever(t *testing.T) (*Retriever, *MockDocumentStore) {
	ctrl := gomock.NewController(t)
	store := NewMockDocumentStore(ctrl)
	return NewRetriever(store, DefaultConfig()), store
}

func TestValidateQuery(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := ValidateQuery("  what is qdrant?  ")
		require.NoError(t, err)
		assert.Equal(t, "what is qdrant?", got)
	})

	t.Run("rejects too short", func(t *testing.T) {
		_, err := ValidateQuery(" a ")
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		_, err := ValidateQuery("   \n\t ")
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("rejects too long", func(t *testing.T) {
		_, err := ValidateQuery(strings.Repeat("x", MaxQueryLen+1))
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("accepts bounds", func(t *testing.T) {
		for _, q := range []string{"ab", strings.Repeat("x", MaxQueryLen)} {
			_, err := ValidateQuery(q)
			assert.NoError(t, err)
		}
	})
}

func TestRetrieveProjectsStoredDocuments(t *testing.T) {
	retriever, store := newTestRetriever(t)

	store.EXPECT().
		Search(gomock.Any(), "capital of France", 5).
		Return([]vectorstore.StoredDocument{
			{
				Title:         "Paris Travel Guide",
				URL:           "https://example.com/paris",
				Source:        "travel-blog",
				PublishedDate: "2024-03-01",
				Text:          "Paris is the capital of France.",
				Distance:      0.12,
			},
		}, nil)

	docs, err := retriever.Retrieve(context.Background(), "capital of France", 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, SourceDocument{
		Title:         "Paris Travel Guide",
		URL:           "https://example.com/paris",
		Publisher:     "travel-blog",
		PublishedDate: "2024-03-01",
		Distance:      0.12,
		Snippet:       "Paris is the capital of France.",
	}, docs[0])
}

func TestRetrieveZeroResultsIsNotAnError(t *testing.T) {
	retriever, store := newTestRetriever(t)

	store.EXPECT().
		Search(gomock.Any(), "obscure question", 5).
		Return(nil, nil)

	docs, err := retriever.Retrieve(context.Background(), "obscure question", 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetrieveExplicitLimitOverridesDefault(t *testing.T) {
	retriever, store := newTestRetriever(t)

	store.EXPECT().
		Search(gomock.Any(), "q1", 3).
		Return(nil, nil)

	_, err := retriever.Retrieve(context.Background(), "q1", 3)
	require.NoError(t, err)
}

func TestRetrieveTruncatesSnippetToBudget(t *testing.T) {
	retriever, store := newTestRetriever(t)

	longText := strings.Repeat("é", 1500)
	store.EXPECT().
		Search(gomock.Any(), "long doc", 5).
		Return([]vectorstore.StoredDocument{{Title: "long", Text: longText}}, nil)

	docs, err := retriever.Retrieve(context.Background(), "long doc", 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, []rune(docs[0].Snippet), 1200)
	assert.Equal(t, strings.Repeat("é", 1200), docs[0].Snippet)
}

func TestRetrieveKeepsShortTextIntact(t *testing.T) {
	retriever, store := newTestRetriever(t)

	store.EXPECT().
		Search(gomock.Any(), "short doc", 5).
		Return([]vectorstore.StoredDocument{{Text: "short enough"}}, nil)

	docs, err := retriever.Retrieve(context.Background(), "short doc", 0)
	require.NoError(t, err)
	assert.Equal(t, "short enough", docs[0].Snippet)
}

func TestRetrieveClassifiesFailures(t *testing.T) {
	t.Run("expired context maps to timeout", func(t *testing.T) {
		retriever, store := newTestRetriever(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		store.EXPECT().
			Search(gomock.Any(), "q", 5).
			Return(nil, errors.New("rpc error: context canceled"))

		_, err := retriever.Retrieve(ctx, "q", 0)
		assert.ErrorIs(t, err, ErrRetrievalTimeout)
		assert.True(t, IsTimeoutError(err))
	})

	t.Run("malformed record maps to malformed", func(t *testing.T) {
		retriever, store := newTestRetriever(t)

		store.EXPECT().
			Search(gomock.Any(), "q", 5).
			Return(nil, fmt.Errorf("%w: payload field title", vectorstore.ErrMalformedRecord))

		_, err := retriever.Retrieve(context.Background(), "q", 0)
		assert.ErrorIs(t, err, ErrRetrievalMalformed)
	})

	t.Run("anything else maps to unavailable", func(t *testing.T) {
		retriever, store := newTestRetriever(t)

		store.EXPECT().
			Search(gomock.Any(), "q", 5).
			Return(nil, errors.New("connection refused"))

		_, err := retriever.Retrieve(context.Background(), "q", 0)
		assert.ErrorIs(t, err, ErrRetrievalUnavailable)
		assert.False(t, IsTimeoutError(err))
	})
}
