package vectorstore

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"
)

// EnsureCollection verifies the document collection exists and creates it
// if missing.
//
// Safe to call multiple times — if the collection already exists the
// function exits early. Invoked before ingestion, never on the chat path.
func (c *Client) EnsureCollection(ctx context.Context) error {
	name := c.cfg.Collection
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return nil
}

// InsertDocument embeds a single document's text and upserts it.
//
// Internally reuses the batch logic to keep payload handling in one place.
func (c *Client) InsertDocument(ctx context.Context, doc Document) error {
	return c.InsertDocuments(ctx, []Document{doc})
}

// InsertDocuments embeds and upserts documents in chunks. Chunks are
// embedded concurrently (bounded by maxConcurrentEmbeds) since the
// inference call dominates ingestion latency; upserts happen per chunk once
// its vectors are ready.
func (c *Client) InsertDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmbeds)

	for start := 0; start < len(docs); start += insertBatchSize {
		end := min(start+insertBatchSize, len(docs))
		chunk := docs[start:end]

		g.Go(func() error {
			if err := c.insertChunk(gctx, chunk); err != nil {
				return fmt.Errorf("[Qdrant] chunk [%d:%d]: %w", start, end, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("[Qdrant] Inserted %d documents (collection=%s)", len(docs), c.cfg.Collection)
	return nil
}

// insertChunk embeds one chunk of documents with a single inference call
// and upserts the resulting points, blocking until Qdrant persisted them.
func (c *Client) insertChunk(ctx context.Context, docs []Document) error {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vectors, err := c.embedder.CreateEmbeddings(ctx, texts...)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, d := range docs {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(buildPayload(d)),
		}
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: c.cfg.Collection,
		Points:         points,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Search embeds the query text and performs one similarity search against
// the document collection, returning at most limit nearest documents.
//
// Zero matches is a valid outcome and yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]StoredDocument, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	vectors, err := c.embedder.CreateEmbeddings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrStoreUnavailable, err)
	}

	qlimit := uint64(limit)
	req := &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(vectors[0]...),
		Limit:          &qlimit,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStoreUnavailable, err)
	}

	docs, err := parseStoredDocuments(resp)
	if err != nil {
		return nil, err
	}

	return docs, nil
}
