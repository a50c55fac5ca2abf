// ABOUTME: Indexing pipeline: transcript file -> segments -> chunks -> embeddings -> store
// ABOUTME: Skips already-indexed videos, upserts in fixed-size batches
package rag

import (
	"context"
	"fmt"

	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/store"
	"github.com/harper/vidrag/internal/transcript"
)

// IndexResult reports what one indexing pass did.
type IndexResult struct {
	VideoID  string
	Segments int
	Chunks   int
	Skipped  bool // chunks already existed for this video
}

// Indexer builds and stores the retrievable chunks of a transcript.
type Indexer struct {
	windower *transcript.Windower
	embedder embed.Embedder
	store    store.VectorStore
	batch    int
}

// NewIndexer wires the chunk windower, embedding gateway, and vector
// store into an indexing pipeline. batch bounds one upsert request.
func NewIndexer(windower *transcript.Windower, embedder embed.Embedder, vs store.VectorStore, batch int) *Indexer {
	return &Indexer{windower: windower, embedder: embedder, store: vs, batch: batch}
}

// IndexTranscript chunks, embeds, and stores the transcript held in
// segments. Videos that already have chunks in the store are skipped;
// the existence check and the writes are not atomic across processes.
func (ix *Indexer) IndexTranscript(ctx context.Context, videoID string, segments []models.Segment) (*IndexResult, error) {
	result := &IndexResult{VideoID: videoID, Segments: len(segments)}

	exists, err := ix.store.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("checking video %s: %w", videoID, err)
	}
	if exists {
		result.Skipped = true
		return result, nil
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("transcript for %s has no timestamped segments", videoID)
	}

	chunks := ix.windower.Chunks(segments, videoID)
	result.Chunks = len(chunks)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := ix.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedded %d of %d chunks", len(vectors), len(chunks))
	}
	for _, v := range vectors {
		if err := models.CheckDimension(v, ix.embedder.Dimension()); err != nil {
			return nil, err
		}
	}

	records := make([]store.Record, len(chunks))
	for i, c := range chunks {
		records[i] = store.Record{ID: c.ID, Values: vectors[i], Chunk: c}
	}

	for start := 0; start < len(records); start += ix.batch {
		end := min(start+ix.batch, len(records))
		if err := ix.store.Upsert(ctx, records[start:end]); err != nil {
			return nil, fmt.Errorf("upserting batch at %d: %w", start, err)
		}
	}

	return result, nil
}

// IndexFile parses the transcript file at path and indexes it for the
// video identified by videoID.
func (ix *Indexer) IndexFile(ctx context.Context, videoID, path string) (*IndexResult, error) {
	segments, err := transcript.ParseSegmentFile(path)
	if err != nil {
		return nil, err
	}
	return ix.IndexTranscript(ctx, videoID, segments)
}
