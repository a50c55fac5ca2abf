// ABOUTME: Vector store on Charm KV with local cosine similarity search
// ABOUTME: Chunk records as JSON values, scanned per video and ranked in memory
package store

import (
	"context"
	"math"
	"sort"

	"github.com/harper/vidrag/internal/charm"
	"github.com/harper/vidrag/internal/models"
)

// kvClient is the slice of the charm client this store needs; tests
// substitute an in-memory implementation.
type kvClient interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	ListKeys(prefix string) ([]string, error)
}

// CharmStore keeps chunk embeddings in Charm KV and ranks them with
// local cosine similarity. Suits single-recording corpora, where a
// video's chunk count stays small enough to scan.
type CharmStore struct {
	kv        kvClient
	dimension int
	closer    interface{ Close() error }
}

// NewCharmStore wraps a charm client as a VectorStore.
func NewCharmStore(client *charm.Client, dimension int) *CharmStore {
	return &CharmStore{kv: client, dimension: dimension, closer: client}
}

// newCharmStoreWithKV is the test seam.
func newCharmStoreWithKV(kv kvClient, dimension int) *CharmStore {
	return &CharmStore{kv: kv, dimension: dimension}
}

// Exists reports whether any chunks are stored for the video.
func (s *CharmStore) Exists(ctx context.Context, videoID string) (bool, error) {
	keys, err := s.kv.ListKeys(charm.VideoPrefix(videoID))
	if err != nil {
		return false, &models.ProviderError{Provider: "charm", Op: "exists", Err: err}
	}
	return len(keys) > 0, nil
}

// Upsert writes each record under its chunk key, validating dimensions
// before anything is written.
func (s *CharmStore) Upsert(ctx context.Context, records []Record) error {
	for _, rec := range records {
		if err := models.CheckDimension(rec.Values, s.dimension); err != nil {
			return err
		}
	}

	for _, rec := range records {
		key := charm.ChunkKey(rec.Chunk.VideoID, rec.ID)
		if err := s.kv.SetJSON(key, rec); err != nil {
			return &models.ProviderError{Provider: "charm", Op: "upsert", Err: err}
		}
	}
	return nil
}

// Query scans the video's records, scores them against the query
// vector, and returns the topK by descending similarity.
func (s *CharmStore) Query(ctx context.Context, vector []float32, videoID string, topK int) ([]models.ScoredChunk, error) {
	if err := models.CheckDimension(vector, s.dimension); err != nil {
		return nil, err
	}

	keys, err := s.kv.ListKeys(charm.VideoPrefix(videoID))
	if err != nil {
		return nil, &models.ProviderError{Provider: "charm", Op: "query", Err: err}
	}

	var results []models.ScoredChunk
	for _, key := range keys {
		var rec Record
		if err := s.kv.GetJSON(key, &rec); err != nil {
			continue
		}
		results = append(results, models.ScoredChunk{
			Chunk: rec.Chunk,
			Score: cosineSimilarity(vector, rec.Values),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Close closes the underlying charm client.
func (s *CharmStore) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
