// ABOUTME: Retriever embeds a query and runs a video-scoped similarity search
// ABOUTME: Validates the query embedding dimension before touching the store
package rag

import (
	"context"

	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/store"
)

// Retriever turns a question into the most relevant transcript chunks
// of one video.
type Retriever struct {
	embedder embed.Embedder
	store    store.VectorStore
	topK     int
}

// NewRetriever wires the embedding gateway to the vector store.
func NewRetriever(embedder embed.Embedder, vs store.VectorStore, topK int) *Retriever {
	return &Retriever{embedder: embedder, store: vs, topK: topK}
}

// Retrieve embeds the query and returns up to topK chunks of the video
// ranked by the store's similarity score. A true zero-result case is an
// empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query, videoID string) ([]models.ScoredChunk, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := models.CheckDimension(vector, r.embedder.Dimension()); err != nil {
		return nil, err
	}

	return r.store.Query(ctx, vector, videoID, r.topK)
}
