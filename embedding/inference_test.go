package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		Endpoint:     srv.URL,
		Model:        "test-embed",
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)
	return client, srv
}

func TestCreateEmbeddingsDecodesVectors(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]},{"embedding":[0.3,0.4]}]}`))
	})

	vecs, err := client.CreateEmbeddings(context.Background(), "hello", "world")
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vecs[0])
	assert.Equal(t, []float32{0.3, 0.4}, vecs[1])

	assert.Equal(t, "test-embed", gotBody["model"])
	assert.Equal(t, []any{"hello", "world"}, gotBody["input"])
}

func TestCreateEmbeddingsCountMismatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1]}]}`))
	})

	_, err := client.CreateEmbeddings(context.Background(), "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 embeddings")
}

func TestCreateEmbeddingsHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.CreateEmbeddings(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestCreateEmbeddingsNoTexts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.CreateEmbeddings(context.Background())
	require.Error(t, err)
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(&Config{Model: "m"})
	require.Error(t, err)
}

func TestProviderSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"embedding":[1]}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{Endpoint: srv.URL, Model: "m", ServiceToken: "secret", HTTPTimeoutS: 5})
	require.NoError(t, err)

	_, err = client.CreateEmbeddings(context.Background(), "a")
	require.NoError(t, err)
}
